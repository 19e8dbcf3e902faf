package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ManuelReschke/Dietly/app/models"
	"github.com/ManuelReschke/Dietly/internal/pkg/payment"
	"gorm.io/gorm"
)

type fakeLedger struct {
	plans      map[uint]models.SubscriptionPlan
	subs       []models.Subscription
	dailyMeals []models.DailyMeal
	nextID     uint
}

func newFakeLedger(plans ...models.SubscriptionPlan) *fakeLedger {
	l := &fakeLedger{plans: map[uint]models.SubscriptionPlan{}, nextID: 1}
	for _, p := range plans {
		l.plans[p.ID] = p
	}
	return l
}

func (l *fakeLedger) GetPlan(planID uint) (*models.SubscriptionPlan, error) {
	p, ok := l.plans[planID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (l *fakeLedger) GetPlanByName(name string) (*models.SubscriptionPlan, error) {
	for _, p := range l.plans {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (l *fakeLedger) CurrentForUser(userID uint) (*CurrentPlan, error) {
	for i := len(l.subs) - 1; i >= 0; i-- {
		sub := l.subs[i]
		if sub.UserID == userID && sub.IsActive {
			plan := l.plans[sub.PlanID]
			return &CurrentPlan{
				SubscriptionID: sub.ID,
				PlanID:         sub.PlanID,
				PlanName:       plan.Name,
				Price:          plan.Price,
				DurationMonths: plan.DurationMonths,
				StartDate:      sub.StartDate,
				EndDate:        sub.EndDate,
				IsActive:       true,
			}, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (l *fakeLedger) ActivateExclusive(sub *models.Subscription, seed []models.DailyMeal) error {
	for i := range l.subs {
		if l.subs[i].UserID == sub.UserID {
			l.subs[i].IsActive = false
		}
	}
	sub.ID = l.nextID
	l.nextID++
	sub.IsActive = true
	l.subs = append(l.subs, *sub)
	l.dailyMeals = append(l.dailyMeals, seed...)
	return nil
}

func (l *fakeLedger) CountSeededMeals(userID uint) (int64, error) {
	var n int64
	for _, m := range l.dailyMeals {
		if m.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (l *fakeLedger) activeCount(userID uint) int {
	n := 0
	for _, s := range l.subs {
		if s.UserID == userID && s.IsActive {
			n++
		}
	}
	return n
}

type fakeSettler struct {
	receipt *payment.Receipt
	err     error
	calls   int
}

func (f *fakeSettler) Settle(ctx context.Context, paymentID uint32, amount float64) (*payment.Receipt, error) {
	f.calls++
	return f.receipt, f.err
}

type fakeSampler struct {
	meals []models.Meal
}

func (f *fakeSampler) Sample(dietType string, count int) ([]models.Meal, error) {
	if count > len(f.meals) {
		count = len(f.meals)
	}
	return f.meals[:count], nil
}

func testPlans() []models.SubscriptionPlan {
	return []models.SubscriptionPlan{
		{ID: 2, Name: "Standard", Price: 1299, DurationMonths: 3},
		{ID: 4, Name: "Annual", Price: 3999, DurationMonths: 12},
	}
}

func fixedNow(t *testing.T, value string) func() time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", value, err)
	}
	return func() time.Time { return ts }
}

func TestSubscribe_ComputesValidityWindow(t *testing.T) {
	ledger := newFakeLedger(testPlans()...)
	svc := NewService(ledger, &fakeSettler{}, &fakeSampler{})
	svc.now = fixedNow(t, "2024-01-01")

	current, err := svc.Subscribe(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if got := current.StartDate.Format("2006-01-02"); got != "2024-01-01" {
		t.Fatalf("StartDate = %s, want 2024-01-01", got)
	}
	if got := current.EndDate.Format("2006-01-02"); got != "2024-04-01" {
		t.Fatalf("EndDate = %s, want 2024-04-01", got)
	}
	if !current.IsActive {
		t.Fatalf("expected new subscription to be active")
	}
	if current.PlanName != "Standard" || current.Price != 1299 || current.DurationMonths != 3 {
		t.Fatalf("plan fields not resolved: %+v", current)
	}
}

func TestSubscribe_InvalidPlanLeavesLedgerUnchanged(t *testing.T) {
	ledger := newFakeLedger(testPlans()...)
	svc := NewService(ledger, &fakeSettler{}, &fakeSampler{})

	_, err := svc.Subscribe(context.Background(), 7, 99)
	if !errors.Is(err, ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}
	if len(ledger.subs) != 0 {
		t.Fatalf("expected no ledger writes, got %d subscriptions", len(ledger.subs))
	}
}

func TestSubscribe_SupersedesPriorActive(t *testing.T) {
	ledger := newFakeLedger(testPlans()...)
	svc := NewService(ledger, &fakeSettler{}, &fakeSampler{})
	svc.now = fixedNow(t, "2024-01-01")

	if _, err := svc.Subscribe(context.Background(), 7, 2); err != nil {
		t.Fatalf("first Subscribe failed: %v", err)
	}
	second, err := svc.Subscribe(context.Background(), 7, 4)
	if err != nil {
		t.Fatalf("second Subscribe failed: %v", err)
	}

	if n := ledger.activeCount(7); n != 1 {
		t.Fatalf("expected exactly one active subscription, got %d", n)
	}
	current, err := svc.CurrentPlan(context.Background(), 7)
	if err != nil {
		t.Fatalf("CurrentPlan failed: %v", err)
	}
	if current == nil || current.SubscriptionID != second.SubscriptionID || current.PlanID != 4 {
		t.Fatalf("expected the second subscription to be current, got %+v", current)
	}
}

func TestSubscribe_DifferentUsersIndependent(t *testing.T) {
	ledger := newFakeLedger(testPlans()...)
	svc := NewService(ledger, &fakeSettler{}, &fakeSampler{})

	if _, err := svc.Subscribe(context.Background(), 7, 2); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if _, err := svc.Subscribe(context.Background(), 8, 4); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if ledger.activeCount(7) != 1 || ledger.activeCount(8) != 1 {
		t.Fatalf("expected both users to keep their active subscription")
	}
}

func TestCurrentPlan_NoneIsNil(t *testing.T) {
	svc := NewService(newFakeLedger(testPlans()...), &fakeSettler{}, &fakeSampler{})

	current, err := svc.CurrentPlan(context.Background(), 7)
	if err != nil {
		t.Fatalf("CurrentPlan failed: %v", err)
	}
	if current != nil {
		t.Fatalf("expected nil current plan, got %+v", current)
	}
}

func TestSubscribeWithPayment_DeclinedWritesNothing(t *testing.T) {
	ledger := newFakeLedger(testPlans()...)
	settler := &fakeSettler{receipt: &payment.Receipt{Status: "failed", Message: "Insufficient funds"}}
	svc := NewService(ledger, settler, &fakeSampler{meals: sampleMeals()})

	result, err := svc.SubscribeWithPayment(context.Background(), 7, "Standard", 1299)
	if err != nil {
		t.Fatalf("SubscribeWithPayment failed: %v", err)
	}

	if result.Status != "failed" || result.Message != "Insufficient funds" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(ledger.subs) != 0 || len(ledger.dailyMeals) != 0 {
		t.Fatalf("expected zero ledger writes on declined payment")
	}
}

func TestSubscribeWithPayment_TransportErrorWritesNothing(t *testing.T) {
	ledger := newFakeLedger(testPlans()...)
	settler := &fakeSettler{err: payment.ErrPaymentFailed}
	svc := NewService(ledger, settler, &fakeSampler{meals: sampleMeals()})

	_, err := svc.SubscribeWithPayment(context.Background(), 7, "Standard", 1299)
	if !errors.Is(err, payment.ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}
	if len(ledger.subs) != 0 || len(ledger.dailyMeals) != 0 {
		t.Fatalf("expected zero ledger writes on settlement failure")
	}
	if settler.calls != 1 {
		t.Fatalf("expected exactly one settlement attempt, got %d", settler.calls)
	}
}

func TestSubscribeWithPayment_SuccessSeedsMeals(t *testing.T) {
	ledger := newFakeLedger(testPlans()...)
	settler := &fakeSettler{receipt: &payment.Receipt{Status: "success", Message: "Payment processed", TransactionID: "TXN-9"}}
	svc := NewService(ledger, settler, &fakeSampler{meals: sampleMeals()})
	svc.now = fixedNow(t, "2024-01-01")

	result, err := svc.SubscribeWithPayment(context.Background(), 7, "Standard", 1299)
	if err != nil {
		t.Fatalf("SubscribeWithPayment failed: %v", err)
	}

	if result.Status != "success" || result.TransactionID != "TXN-9" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Meals) != 3 {
		t.Fatalf("expected 3 seeded meals in response, got %d", len(result.Meals))
	}
	if n, _ := ledger.CountSeededMeals(7); n != 3 {
		t.Fatalf("expected 3 daily meal rows, got %d", n)
	}
	if ledger.activeCount(7) != 1 {
		t.Fatalf("expected one active subscription")
	}
	// Payment-flavored subscriptions run for 30 days.
	sub := ledger.subs[0]
	if got := sub.EndDate.Format("2006-01-02"); got != "2024-01-31" {
		t.Fatalf("EndDate = %s, want 2024-01-31", got)
	}
	// The plan name resolved to its catalog id.
	if sub.PlanID != 2 {
		t.Fatalf("PlanID = %d, want 2", sub.PlanID)
	}
}

func sampleMeals() []models.Meal {
	return []models.Meal{
		{ID: 1, MealName: "Grilled Chicken Bowl", DietType: "Balanced"},
		{ID: 2, MealName: "Keto Steak & Butter Greens", DietType: "Keto"},
		{ID: 3, MealName: "Vegan Buddha Bowl", DietType: "Vegan"},
		{ID: 4, MealName: "Lentil Curry", DietType: "Vegan"},
	}
}
