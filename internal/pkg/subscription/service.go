package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/ManuelReschke/Dietly/app/models"
	"github.com/ManuelReschke/Dietly/internal/pkg/payment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidPlan is returned when a subscribe call references a plan that is
// not in the catalog. The ledger stays untouched.
var ErrInvalidPlan = errors.New("invalid subscription plan")

// MealSampler draws meals from the catalog for seeding a fresh subscription.
// An empty dietType samples across the whole catalog.
type MealSampler interface {
	Sample(dietType string, count int) ([]models.Meal, error)
}

const seedMealCount = 3

// Service owns the subscription ledger: it is the only writer of the
// is_active flag and guarantees at most one active subscription per user.
type Service struct {
	repo    Repository
	settler payment.Settler
	sampler MealSampler

	now func() time.Time
}

// NewService creates a subscription service from injected collaborators.
func NewService(repo Repository, settler payment.Settler, sampler MealSampler) *Service {
	return &Service{
		repo:    repo,
		settler: settler,
		sampler: sampler,
		now:     time.Now,
	}
}

// NewServiceFromDB creates a subscription service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, settler payment.Settler, sampler MealSampler) *Service {
	return NewService(NewRepository(db), settler, sampler)
}

// CurrentPlan returns the user's active subscription joined with plan
// catalog fields, or nil when the user has none.
func (s *Service) CurrentPlan(ctx context.Context, userID uint) (*CurrentPlan, error) {
	_ = ctx
	current, err := s.repo.CurrentForUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}

// Subscribe activates planID for the user. Any prior active subscription is
// deactivated in the same transaction, so the single-active invariant holds
// even under concurrent calls for the same user.
func (s *Service) Subscribe(ctx context.Context, userID, planID uint) (*CurrentPlan, error) {
	_ = ctx
	plan, err := s.repo.GetPlan(planID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidPlan
	}
	if err != nil {
		return nil, err
	}

	start := s.now()
	sub := models.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		PlanType:  plan.Name,
		StartDate: start,
		EndDate:   start.AddDate(0, plan.DurationMonths, 0),
	}

	if err := s.repo.ActivateExclusive(&sub, nil); err != nil {
		return nil, err
	}

	return &CurrentPlan{
		SubscriptionID: sub.ID,
		PlanID:         plan.ID,
		PlanName:       plan.Name,
		Price:          plan.Price,
		DurationMonths: plan.DurationMonths,
		StartDate:      sub.StartDate,
		EndDate:        sub.EndDate,
		IsActive:       true,
	}, nil
}

// SubscribeWithPayment settles the charge first and only then touches the
// ledger. A declined payment returns a failed result with zero DB writes; a
// transport-level settlement error is returned as an error for the caller
// to surface. Payments are never retried here.
func (s *Service) SubscribeWithPayment(ctx context.Context, userID uint, planName string, price float64) (*PaymentResult, error) {
	paymentID := uuid.New().ID()

	receipt, err := s.settler.Settle(ctx, paymentID, price)
	if err != nil {
		return nil, err
	}
	if !receipt.Succeeded() {
		msg := receipt.Message
		if msg == "" {
			msg = "Payment failed"
		}
		return &PaymentResult{Status: "failed", Message: msg}, nil
	}

	start := s.now()
	sub := models.Subscription{
		UserID:    userID,
		PlanType:  planName,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 30),
	}
	// The payment-flavored flow is keyed by plan name; resolve the catalog id
	// when the name matches so the ledger row still joins to the catalog.
	if plan, perr := s.repo.GetPlanByName(planName); perr == nil {
		sub.PlanID = plan.ID
	}

	meals, err := s.sampler.Sample("", seedMealCount)
	if err != nil {
		return nil, err
	}

	seed := make([]models.DailyMeal, 0, len(meals))
	for _, m := range meals {
		seed = append(seed, models.DailyMeal{
			UserID:   userID,
			MealName: m.MealName,
			PlanType: planName,
			MealDate: start,
		})
	}

	if err := s.repo.ActivateExclusive(&sub, seed); err != nil {
		return nil, err
	}

	msg := receipt.Message
	if msg == "" {
		msg = "Subscribed and daily meals generated!"
	}

	return &PaymentResult{
		Status:         "success",
		Message:        msg,
		TransactionID:  receipt.TransactionID,
		SubscriptionID: sub.ID,
		Meals:          meals,
	}, nil
}
