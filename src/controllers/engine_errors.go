package controllers

import (
	"errors"

	"Backend-Parsamooz/src/services/formengine"
	"Backend-Parsamooz/src/services/forms"
	"Backend-Parsamooz/src/services/submission"
	"Backend-Parsamooz/src/utils"

	"github.com/gofiber/fiber/v2"
)

// respondEngineError maps the form engine's error taxonomy (and the service
// sentinels around it) onto HTTP responses. Validation errors carry the full
// per-path message map so the client can annotate every violated field.
func respondEngineError(c *fiber.Ctx, err error) error {
	var vErr *formengine.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status": fiber.StatusUnprocessableEntity,
			"errors": vErr.Errors,
		})
	}

	var sErr *formengine.SchemaError
	if errors.As(err, &sErr) {
		return utils.HandleError(c, fiber.StatusBadRequest, sErr.Message)
	}

	var cErr *formengine.ConflictError
	if errors.As(err, &cErr) {
		return utils.HandleError(c, fiber.StatusConflict, "این فرم قبلاً توسط شما تکمیل شده است")
	}

	var tErr *formengine.TimeoutError
	if errors.As(err, &tErr) {
		return utils.HandleError(c, fiber.StatusGatewayTimeout, tErr.Error())
	}

	switch {
	case errors.Is(err, forms.ErrFormNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, "Form not found")
	case errors.Is(err, forms.ErrFormClosed), errors.Is(err, forms.ErrNotAssigned):
		return utils.HandleError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, submission.ErrSubmissionNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, "Submission not found")
	}

	return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
}
