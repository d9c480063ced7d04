package controllers

import (
	"context"
	"time"

	"Backend-Parsamooz/src/services/auth"
	"Backend-Parsamooz/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary      Login with username and password
// @Description  Login with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/login [post]
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Username and password are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := auth.AuthenticateUser(ctx, req.Username, req.Password)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	token, err := utils.GenerateJWT(user.Username, user.UserType, user.Name, user.SchoolCode)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Token generation failed")
	}

	refresh := utils.GenerateRandomString(64)
	if err := utils.StoreRefreshToken(user.Username, refresh, 7*24*time.Hour); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Session storage failed")
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refresh,
		"expiresIn":    86400,
		"user": fiber.Map{
			"username":   user.Username,
			"name":       user.Name,
			"userType":   user.UserType,
			"schoolCode": user.SchoolCode,
		},
	})
}

type RefreshRequest struct {
	Username     string `json:"username" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body RefreshRequest true "Refresh token"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/refresh [post]
func Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Username and refreshToken are required")
	}

	ok, err := utils.ValidateRefreshToken(req.Username, req.RefreshToken)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := auth.LookupUser(ctx, req.Username)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Unknown user")
	}

	token, err := utils.GenerateJWT(user.Username, user.UserType, user.Name, user.SchoolCode)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Token generation failed")
	}
	return c.JSON(fiber.Map{"token": token, "expiresIn": 86400})
}

// Logout godoc
// @Summary      Invalidate the caller's refresh token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func Logout(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)
	if err := utils.DeleteRefreshToken(username); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}
