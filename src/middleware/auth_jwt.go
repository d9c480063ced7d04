package middleware

import (
	"strings"

	"Backend-Parsamooz/src/utils"

	"github.com/gofiber/fiber/v2"
)

func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "detail": err.Error()})
	}

	c.Locals("username", claims.Username)
	c.Locals("userType", claims.UserType)
	c.Locals("name", claims.Name)
	c.Locals("schoolCode", claims.SchoolCode)

	return c.Next()
}

// RequireUserType allows only the listed user types past the middleware.
func RequireUserType(types ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userType, _ := c.Locals("userType").(string)
		for _, t := range types {
			if userType == t {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
