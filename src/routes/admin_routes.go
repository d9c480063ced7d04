package routes

import (
	"Backend-Parsamooz/src/controllers"
	"Backend-Parsamooz/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func adminRoutes(router fiber.Router) {
	admin := router.Group("/admin", middleware.AuthJWT, middleware.RequireUserType("admin"))

	admin.Post("/jobs/birthday-scan", controllers.RunBirthdayScan)
}
