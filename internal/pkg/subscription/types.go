package subscription

import (
	"time"

	"github.com/ManuelReschke/Dietly/app/models"
)

// CurrentPlan is a user's active subscription joined with its catalog plan
// fields, as returned to clients.
type CurrentPlan struct {
	SubscriptionID uint      `json:"subscription_id"`
	PlanID         uint      `json:"plan_id"`
	PlanName       string    `json:"plan_name"`
	Price          int       `json:"price"`
	DurationMonths int       `json:"duration_months"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	IsActive       bool      `json:"is_active"`
}

// PaymentResult is the outcome of a payment-backed subscribe. Status mirrors
// the settlement collaborator wire values ("success" / "failed").
type PaymentResult struct {
	Status         string        `json:"status"`
	Message        string        `json:"message"`
	TransactionID  string        `json:"transactionId,omitempty"`
	SubscriptionID uint          `json:"subscriptionId,omitempty"`
	Meals          []models.Meal `json:"meals"`
}
