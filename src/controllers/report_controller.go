package controllers

import (
	"context"
	"time"

	"Backend-Parsamooz/src/services/reports"
	"Backend-Parsamooz/src/utils"

	"github.com/gofiber/fiber/v2"
)

// GetMonthlyGradeReport godoc
// @Summary      Monthly grade report for a class and course
// @Description  Per-student monthly averages, assessment-weighted final scores, and ranks
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        classCode   query  string  true  "Class code"
// @Param        courseCode  query  string  true  "Course code"
// @Success      200  {array}  models.StudentGradeReport
// @Failure      400  {object}  models.ErrorResponse
// @Router       /reports/grades/monthly [get]
func GetMonthlyGradeReport(c *fiber.Ctx) error {
	classCode := c.Query("classCode")
	courseCode := c.Query("courseCode")
	if classCode == "" || courseCode == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "classCode and courseCode are required")
	}
	schoolCode, _ := c.Locals("schoolCode").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := reports.MonthlyGradeReport(ctx, schoolCode, classCode, courseCode)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}
