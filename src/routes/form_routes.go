package routes

import (
	"Backend-Parsamooz/src/controllers"
	"Backend-Parsamooz/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func formRoutes(router fiber.Router) {
	forms := router.Group("/forms", middleware.AuthJWT)

	forms.Get("/", controllers.GetAllForms)
	forms.Get("/:id", controllers.GetFormByID)

	admin := middleware.RequireUserType("admin", "teacher")
	forms.Post("/", admin, controllers.CreateForm)
	forms.Put("/:id", admin, controllers.UpdateForm)
	forms.Delete("/:id", admin, controllers.DeleteForm)

	forms.Post("/:id/steps/enable", admin, controllers.EnableMultiStep)
	forms.Post("/:id/steps", admin, controllers.AddStep)
	forms.Delete("/:id/steps/:stepId", admin, controllers.RemoveStep)
}
