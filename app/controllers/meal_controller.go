package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleDailyMealPlan returns today's sampled meals for the user's assigned
// diet type. Users without an assigned diet get an empty list with an
// explanatory message.
func HandleDailyMealPlan(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "failed", "message": "invalid user id"})
	}

	result, err := getMealService().DailyPlan(c.Context(), uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "failed", "message": "Server error"})
	}

	return c.JSON(result)
}
