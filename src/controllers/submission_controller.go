package controllers

import (
	"context"
	"strconv"
	"time"

	"Backend-Parsamooz/src/services/formengine"
	"Backend-Parsamooz/src/services/forms"
	"Backend-Parsamooz/src/services/students"
	submissionSvc "Backend-Parsamooz/src/services/submission"
	"Backend-Parsamooz/src/services/uploads"
	"Backend-Parsamooz/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fileStore = uploads.NewLocalStorageFromEnv()

type SubmitRequest struct {
	Answers map[string]interface{} `json:"answers"`
}

// SubmitForm godoc
// @Summary      Submit answers for a form
// @Description  Validates the full answer record against the form schema, then creates or updates the caller's submission
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Form ID"
// @Param        body body SubmitRequest true "Answer record"
// @Success      201  {object}  models.Submission
// @Failure      403  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      422  {object}  map[string]interface{}
// @Router       /forms/{id}/submissions [post]
func SubmitForm(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if req.Answers == nil {
		req.Answers = map[string]interface{}{}
	}

	username, _ := c.Locals("username").(string)
	userType, _ := c.Locals("userType").(string)
	name, _ := c.Locals("name").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	form, err := forms.GetFormByID(ctx, formID)
	if err != nil {
		return respondEngineError(c, err)
	}

	var classCodes []string
	if userType == "student" {
		if s, err := students.GetStudentByCode(ctx, username); err == nil {
			classCodes = s.ClassCodes
		}
	}
	if err := forms.CheckSubmitAccess(form, userType, classCodes, username); err != nil {
		return respondEngineError(c, err)
	}

	rules := formengine.Compile(form.Fields, formengine.DefaultRegistry)
	if result := rules.Validate(req.Answers); !result.Valid {
		return respondEngineError(c, result.Err())
	}

	assembler := formengine.NewAssembler(fileStore, submissionSvc.Store{})
	sub, err := assembler.Assemble(ctx, form, req.Answers, formengine.Identity{
		Username: username,
		UserType: userType,
		Name:     name,
	})
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// GetFormSubmissions godoc
// @Summary      List a form's submissions with pagination
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "Form ID"
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Number of items per page" default(10)
// @Success      200  {object}  models.PaginatedSubmissionsResponse
// @Router       /forms/{id}/submissions [get]
func GetFormSubmissions(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := submissionSvc.GetSubmissionsByFormID(ctx, formID, page, limit)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(result)
}

// GetMySubmission godoc
// @Summary      Get the caller's submission for a form
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Form ID"
// @Success      200  {object}  models.Submission
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{id}/submissions/me [get]
func GetMySubmission(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}
	username, _ := c.Locals("username").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := submissionSvc.Store{}.FindSubmission(ctx, formID, username)
	if err != nil {
		return respondEngineError(c, err)
	}
	if sub == nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Submission not found")
	}
	return c.JSON(sub)
}

// GetMySubmissions godoc
// @Summary      List every submission the caller has made
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Submission
// @Router       /submissions/me [get]
func GetMySubmissions(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	subs, err := submissionSvc.GetSubmissionsByUsername(ctx, username)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(subs)
}

// DeleteSubmission godoc
// @Summary      Delete a submission
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Submission ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /submissions/{id} [delete]
func DeleteSubmission(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid submission ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := submissionSvc.DeleteSubmission(ctx, id); err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Submission deleted"})
}
