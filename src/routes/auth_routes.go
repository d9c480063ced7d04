package routes

import (
	"Backend-Parsamooz/src/controllers"
	"Backend-Parsamooz/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(router fiber.Router) {
	auth := router.Group("/auth")

	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.Refresh)
	auth.Post("/logout", middleware.AuthJWT, controllers.Logout)
}
