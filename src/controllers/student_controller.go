package controllers

import (
	"context"
	"strconv"
	"time"

	"Backend-Parsamooz/src/services/students"
	"Backend-Parsamooz/src/utils"

	"github.com/gofiber/fiber/v2"
)

// GetStudents godoc
// @Summary      List students with pagination and search
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number" default(1)
// @Param        limit   query  int     false  "Number of items per page" default(10)
// @Param        search  query  string  false  "Search term"
// @Success      200  {object}  map[string]interface{}
// @Router       /students [get]
func GetStudents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list, total, totalPages, err := students.GetStudents(ctx, page, limit, c.Query("search"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"students":   list,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": totalPages,
	})
}

// GetTodayBirthdays godoc
// @Summary      Students whose birthday is today (Jalali)
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Student
// @Router       /students/birthdays/today [get]
func GetTodayBirthdays(c *fiber.Ctx) error {
	schoolCode, _ := c.Locals("schoolCode").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list, err := students.TodayBirthdays(ctx, schoolCode)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(list)
}
