package routes

import (
	"Backend-Parsamooz/src/controllers"
	"Backend-Parsamooz/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func notificationRoutes(router fiber.Router) {
	notifications := router.Group("/notifications", middleware.AuthJWT)

	notifications.Get("/me", controllers.GetMyNotifications)
	notifications.Post("/:id/read", controllers.MarkNotificationRead)
}
