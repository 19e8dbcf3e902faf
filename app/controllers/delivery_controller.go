package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// HandleDeliveryETA asks the external ETA collaborator for the delivery
// time over the given distance.
func HandleDeliveryETA(c *fiber.Ctx) error {
	distanceKm, err := strconv.ParseFloat(c.Params("distanceKm"), 64)
	if err != nil || distanceKm < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid distance"})
	}

	eta, err := getETAEstimator().EstimateETA(c.Context(), distanceKm)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Delivery calculation failed"})
	}

	return c.JSON(fiber.Map{"etaMinutes": eta})
}
