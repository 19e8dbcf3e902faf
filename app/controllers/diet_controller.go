package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Dietly/internal/pkg/dietai"
)

// HandleAIDietRecommendation runs the quiz answers through the scoring
// collaborator and assigns the recommended diet plan to the user. The plan
// returned to the client is the catalog row, re-read after the assignment.
func HandleAIDietRecommendation(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	userID := parseUserIDField(body["user_id"])
	if userID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}
	delete(body, "user_id")

	result, err := getDietService().Recommend(c.Context(), userID, body)
	if err != nil {
		switch {
		case errors.Is(err, dietai.ErrScoringUnavailable):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "AI model is unavailable"})
		case errors.Is(err, dietai.ErrInvalidScoringOutput):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "AI model did not return valid JSON output"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user's diet plan"})
		}
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"message":          result.Message,
		"recommended_plan": result.RecommendedPlan,
	})
}

// HandleCurrentDiet returns the user's assigned diet plan. An unassigned
// user gets a success-shaped null, not an error.
func HandleCurrentDiet(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	plan, err := getDietService().CurrentDiet(c.Context(), uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}

	if plan == nil {
		return c.JSON(fiber.Map{
			"success":     false,
			"currentDiet": nil,
			"message":     "No diet plan assigned yet.",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"currentDiet": plan,
	})
}

// parseUserIDField accepts the user id as a JSON number or numeric string;
// quiz clients send both.
func parseUserIDField(raw interface{}) uint {
	switch v := raw.(type) {
	case float64:
		if v > 0 {
			return uint(v)
		}
	case string:
		var id uint
		for _, ch := range v {
			if ch < '0' || ch > '9' {
				return 0
			}
			id = id*10 + uint(ch-'0')
		}
		return id
	}
	return 0
}
