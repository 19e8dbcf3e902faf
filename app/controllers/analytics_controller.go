package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Dietly/internal/pkg/analytics"
)

// HandleAnalyticsSubscriptions returns active subscription counts per plan.
func HandleAnalyticsSubscriptions(c *fiber.Ctx) error {
	counts, err := analytics.SubscriptionsPerPlan()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(counts)
}

// HandleAnalyticsDietPlans returns catalog meal counts per diet type.
func HandleAnalyticsDietPlans(c *fiber.Ctx) error {
	counts, err := analytics.MealsPerDietType()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(counts)
}

// HandleAnalyticsWeeklySubs returns subscription starts per ISO week.
func HandleAnalyticsWeeklySubs(c *fiber.Ctx) error {
	weeks, err := analytics.WeeklyNewSubscribers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(weeks)
}
