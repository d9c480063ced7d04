package controllers

import (
	"Backend-Parsamooz/src/database"
	"Backend-Parsamooz/src/jobs"
	"Backend-Parsamooz/src/utils"

	"github.com/gofiber/fiber/v2"
)

// RunBirthdayScan godoc
// @Summary      Enqueue the birthday scan job immediately
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  map[string]interface{}
// @Failure      503  {object}  models.ErrorResponse
// @Router       /admin/jobs/birthday-scan [post]
func RunBirthdayScan(c *fiber.Ctx) error {
	if database.AsynqClient == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "Background jobs are disabled (no Redis)")
	}

	schoolCode, _ := c.Locals("schoolCode").(string)
	task, err := jobs.NewBirthdayScanTask(schoolCode)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	info, err := database.AsynqClient.Enqueue(task)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"taskId": info.ID, "queue": info.Queue})
}
