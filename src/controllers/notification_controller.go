package controllers

import (
	"context"
	"time"

	"Backend-Parsamooz/src/services/notifications"
	"Backend-Parsamooz/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetMyNotifications godoc
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Notification
// @Router       /notifications/me [get]
func GetMyNotifications(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list, err := notifications.ListForRecipient(ctx, username)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(list)
}

// MarkNotificationRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /notifications/{id}/read [post]
func MarkNotificationRead(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid notification ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := notifications.MarkRead(ctx, id); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
