package routes

import (
	"Backend-Parsamooz/src/controllers"
	"Backend-Parsamooz/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func reportRoutes(router fiber.Router) {
	reports := router.Group("/reports", middleware.AuthJWT, middleware.RequireUserType("admin", "teacher"))

	reports.Get("/grades/monthly", controllers.GetMonthlyGradeReport)
}
