package routes

import (
	"Backend-Parsamooz/src/controllers"
	"Backend-Parsamooz/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func submissionRoutes(router fiber.Router) {
	forms := router.Group("/forms", middleware.AuthJWT)

	forms.Post("/:id/submissions", controllers.SubmitForm)
	forms.Post("/:id/files", controllers.UploadFormFile)
	forms.Get("/:id/submissions/me", controllers.GetMySubmission)
	forms.Get("/:id/submissions", middleware.RequireUserType("admin", "teacher"), controllers.GetFormSubmissions)

	subs := router.Group("/submissions", middleware.AuthJWT)
	subs.Get("/me", controllers.GetMySubmissions)
	subs.Delete("/:id", middleware.RequireUserType("admin"), controllers.DeleteSubmission)
}
