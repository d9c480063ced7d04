package routes

import (
	"Backend-Parsamooz/src/controllers"
	"Backend-Parsamooz/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func studentRoutes(router fiber.Router) {
	students := router.Group("/students", middleware.AuthJWT, middleware.RequireUserType("admin", "teacher"))

	students.Get("/", controllers.GetStudents)
	students.Get("/birthdays/today", controllers.GetTodayBirthdays)
}
