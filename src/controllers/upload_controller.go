package controllers

import (
	"context"
	"io"
	"time"

	"Backend-Parsamooz/src/services/formengine"
	"Backend-Parsamooz/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxUploadSize bounds a single form file upload (10 MB).
const maxUploadSize = 10 << 20

// UploadFormFile godoc
// @Summary      Upload a file for a form field
// @Description  Stores the file and returns the reference to embed in the answer record
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Form ID"
// @Param        field query     string  true  "Field path"
// @Param        file  formData  file    true  "File"
// @Success      201  {object}  models.StoredFileReference
// @Failure      400  {object}  models.ErrorResponse
// @Router       /forms/{id}/files [post]
func UploadFormFile(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	fieldPath := c.Query("field")
	if fieldPath == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "field query parameter is required")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "file is required")
	}
	if header.Size > maxUploadSize {
		return utils.HandleError(c, fiber.StatusRequestEntityTooLarge, "file exceeds the 10MB limit")
	}

	f, err := header.Open()
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "failed to open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "failed to read upload")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ref, err := fileStore.Upload(ctx, formID, fieldPath, &formengine.PendingUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(ref)
}
