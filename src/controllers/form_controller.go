package controllers

import (
	"context"
	"strconv"
	"time"

	"Backend-Parsamooz/src/models"
	"Backend-Parsamooz/src/services/forms"
	"Backend-Parsamooz/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateForm godoc
// @Summary      Create a new form
// @Description  Create a new form schema
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body body models.FormSchema true "Form schema"
// @Success      201  {object}  models.FormSchema
// @Failure      400  {object}  models.ErrorResponse
// @Router       /forms [post]
func CreateForm(c *fiber.Ctx) error {
	var form models.FormSchema
	if err := c.BodyParser(&form); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := forms.CreateForm(ctx, &form)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetAllForms godoc
// @Summary      Get all forms with pagination
// @Tags         forms
// @Produce      json
// @Param        page   query  int  false  "Page number" default(1)
// @Param        limit  query  int  false  "Number of items per page" default(10)
// @Success      200  {object}  models.PaginatedFormsResponse
// @Router       /forms [get]
func GetAllForms(c *fiber.Ctx) error {
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

	result, err := forms.GetForms(ctx, page, limit)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(result)
}

// GetFormByID godoc
// @Summary      Get a form by ID
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Success      200  {object}  models.FormSchema
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{id} [get]
func GetFormByID(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := forms.GetFormByID(ctx, formID)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(form)
}

// UpdateForm godoc
// @Summary      Update a form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Param        body body models.FormSchema true "Form schema"
// @Success      200  {object}  models.FormSchema
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{id} [put]
func UpdateForm(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	var form models.FormSchema
	if err := c.BodyParser(&form); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updated, err := forms.UpdateForm(ctx, formID, &form)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(updated)
}

// DeleteForm godoc
// @Summary      Delete a form
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{id} [delete]
func DeleteForm(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := forms.DeleteForm(ctx, formID); err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Form deleted"})
}

// EnableMultiStep godoc
// @Summary      Convert a form to multi-step
// @Description  Creates a first step containing every existing field
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Success      200  {object}  models.FormSchema
// @Router       /forms/{id}/steps/enable [post]
func EnableMultiStep(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := forms.EnableMultiStep(ctx, formID)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(form)
}

type AddStepRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// AddStep godoc
// @Summary      Add a step to a form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Param        body body AddStepRequest true "Step"
// @Success      200  {object}  models.FormSchema
// @Router       /forms/{id}/steps [post]
func AddStep(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	var req AddStepRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Step title is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := forms.AddStep(ctx, formID, req.Title, req.Description)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(form)
}

// RemoveStep godoc
// @Summary      Delete a step from a form
// @Description  The step's fields move to the first remaining step; the last step cannot be deleted
// @Tags         forms
// @Produce      json
// @Param        id      path  string  true  "Form ID"
// @Param        stepId  path  string  true  "Step ID"
// @Success      200  {object}  models.FormSchema
// @Failure      400  {object}  models.ErrorResponse
// @Router       /forms/{id}/steps/{stepId} [delete]
func RemoveStep(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := forms.RemoveStep(ctx, formID, c.Params("stepId"))
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(form)
}
