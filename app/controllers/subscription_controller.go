package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Dietly/internal/pkg/analytics"
	"github.com/ManuelReschke/Dietly/internal/pkg/payment"
	"github.com/ManuelReschke/Dietly/internal/pkg/subscription"
)

// SubscribeRequest covers both subscribe operations. A plan id selects the
// catalog flow; a plan name plus price selects the payment-backed flow.
type SubscribeRequest struct {
	UserID   uint    `json:"userId"`
	PlanID   uint    `json:"planId"`
	PlanName string  `json:"planName"`
	Price    float64 `json:"price"`
}

// HandleCurrentSubscription returns the user's active subscription joined
// with plan fields, or null when there is none.
func HandleCurrentSubscription(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	current, err := getSubscriptionService().CurrentPlan(c.Context(), uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"currentPlan": nil})
	}
	if current == nil {
		return c.JSON(fiber.Map{"currentPlan": nil})
	}

	return c.JSON(fiber.Map{"currentPlan": current})
}

// HandleSubscribe dispatches between the plain and the payment-backed
// subscribe based on which request fields are present.
func HandleSubscribe(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "failed", "message": "Missing fields"})
	}

	if req.UserID != 0 && req.PlanName != "" && req.Price > 0 {
		return subscribeWithPayment(c, req)
	}
	if req.UserID != 0 && req.PlanID != 0 {
		return subscribePlain(c, req)
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "failed", "message": "Missing fields"})
}

func subscribePlain(c *fiber.Ctx, req SubscribeRequest) error {
	current, err := getSubscriptionService().Subscribe(c.Context(), req.UserID, req.PlanID)
	if err != nil {
		if errors.Is(err, subscription.ErrInvalidPlan) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "failed", "message": "Invalid plan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "failed", "message": "Server error"})
	}

	analytics.InvalidateAll()

	return c.JSON(fiber.Map{
		"status":         "success",
		"message":        "Subscribed successfully!",
		"subscriptionId": current.SubscriptionID,
		"currentPlan":    current,
	})
}

func subscribeWithPayment(c *fiber.Ctx, req SubscribeRequest) error {
	result, err := getSubscriptionService().SubscribeWithPayment(c.Context(), req.UserID, req.PlanName, req.Price)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentFailed) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "failed", "message": "Invalid payment response"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "failed", "message": "Server error"})
	}

	if result.Status == "success" {
		analytics.InvalidateAll()
	}
	return c.JSON(result)
}
