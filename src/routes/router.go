package routes

import (
	"github.com/gofiber/fiber/v2"
)

func InitRoutes(app *fiber.App) {
	api := app.Group("/api")

	authRoutes(api)
	formRoutes(api)
	submissionRoutes(api)
	reportRoutes(api)
	studentRoutes(api)
	notificationRoutes(api)
	adminRoutes(api)

	// Route to check the API is alive
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
