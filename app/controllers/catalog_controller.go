package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Dietly/app/repository"
)

// HandleListSubscriptionPlans lists the purchasable plan tiers.
func HandleListSubscriptionPlans(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalFactory().GetCatalogRepository().ListSubscriptionPlans()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(fiber.Map{"plans": plans})
}

// HandleListDietPlans lists the diet plan catalog shown on the quiz page.
func HandleListDietPlans(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalFactory().GetCatalogRepository().ListDietPlans()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(fiber.Map{"diet_plans": plans})
}
