package mealplan

import (
	"context"
	"testing"
	"time"

	"github.com/ManuelReschke/Dietly/app/models"
	"gorm.io/gorm"
)

type fakeResolver struct {
	plan *models.DietPlan
}

func (f *fakeResolver) CurrentDiet(ctx context.Context, userID uint) (*models.DietPlan, error) {
	return f.plan, nil
}

type fakeCatalog struct {
	meals []models.Meal
}

func (f *fakeCatalog) GetSubscriptionPlan(id uint) (*models.SubscriptionPlan, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCatalog) GetSubscriptionPlanByName(name string) (*models.SubscriptionPlan, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCatalog) ListSubscriptionPlans() ([]models.SubscriptionPlan, error) { return nil, nil }
func (f *fakeCatalog) GetDietPlan(id uint) (*models.DietPlan, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCatalog) GetDietPlanByName(name string) (*models.DietPlan, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCatalog) ListDietPlans() ([]models.DietPlan, error) { return nil, nil }
func (f *fakeCatalog) ListMealsByDietType(dietType string) ([]models.Meal, error) {
	var out []models.Meal
	for _, m := range f.meals {
		if m.DietType == dietType {
			out = append(out, m)
		}
	}
	return out, nil
}
func (f *fakeCatalog) ListMeals() ([]models.Meal, error) { return f.meals, nil }

type fakeDailyMeals struct {
	entries []models.DailyMeal
}

func (f *fakeDailyMeals) CreateBatch(entries []models.DailyMeal) error {
	f.entries = append(f.entries, entries...)
	return nil
}
func (f *fakeDailyMeals) ListByUserAndDate(userID uint, date time.Time) ([]models.DailyMeal, error) {
	return nil, nil
}
func (f *fakeDailyMeals) CountByUser(userID uint) (int64, error) {
	return int64(len(f.entries)), nil
}

type mapCache struct {
	data map[string]string
}

func (c *mapCache) Get(key string) (string, error) {
	v, ok := c.data[key]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return v, nil
}
func (c *mapCache) Set(key string, value interface{}, expiration time.Duration) error {
	c.data[key] = value.(string)
	return nil
}

func ketoMeals() []models.Meal {
	return []models.Meal{
		{ID: 1, MealName: "Keto Steak & Butter Greens", DietType: "Keto"},
		{ID: 2, MealName: "Keto Salmon Avocado Salad", DietType: "Keto"},
		{ID: 3, MealName: "Keto Egg Muffins", DietType: "Keto"},
		{ID: 4, MealName: "Vegan Buddha Bowl", DietType: "Vegan"},
	}
}

func newTestService(resolver DietResolver, meals []models.Meal) (*Service, *fakeDailyMeals, *mapCache) {
	daily := &fakeDailyMeals{}
	cache := &mapCache{data: map[string]string{}}
	svc := NewService(&fakeCatalog{meals: meals}, daily, resolver)
	svc.planCache = cache
	return svc, daily, cache
}

func TestDailyPlan_NoAssignedDiet(t *testing.T) {
	svc, daily, _ := newTestService(&fakeResolver{plan: nil}, ketoMeals())

	result, err := svc.DailyPlan(context.Background(), 7)
	if err != nil {
		t.Fatalf("DailyPlan failed: %v", err)
	}

	if len(result.Meals) != 0 {
		t.Fatalf("expected no meals, got %d", len(result.Meals))
	}
	if result.Message != "No diet plan assigned yet." {
		t.Fatalf("Message = %q", result.Message)
	}
	if len(daily.entries) != 0 {
		t.Fatalf("expected no log writes for unassigned user")
	}
}

func TestDailyPlan_NoMealsForDietType(t *testing.T) {
	resolver := &fakeResolver{plan: &models.DietPlan{ID: 9, DietName: "Carnivore"}}
	svc, _, _ := newTestService(resolver, ketoMeals())

	result, err := svc.DailyPlan(context.Background(), 7)
	if err != nil {
		t.Fatalf("DailyPlan failed: %v", err)
	}

	if len(result.Meals) != 0 {
		t.Fatalf("expected no meals, got %d", len(result.Meals))
	}
	if result.Message != "No meals found for Carnivore." {
		t.Fatalf("Message = %q", result.Message)
	}
}

func TestDailyPlan_SamplesAndLogs(t *testing.T) {
	resolver := &fakeResolver{plan: &models.DietPlan{ID: 3, DietName: "Keto"}}
	svc, daily, _ := newTestService(resolver, ketoMeals())

	result, err := svc.DailyPlan(context.Background(), 7)
	if err != nil {
		t.Fatalf("DailyPlan failed: %v", err)
	}

	if result.Status != "success" || result.DietType != "Keto" {
		t.Fatalf("unexpected result header: %+v", result)
	}
	if len(result.Meals) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(result.Meals))
	}
	for _, m := range result.Meals {
		if m.DietType != "Keto" {
			t.Fatalf("meal %q is not a Keto meal", m.MealName)
		}
	}
	if result.Message != "Here are your meals for the Keto diet!" {
		t.Fatalf("Message = %q", result.Message)
	}
	if len(daily.entries) != 3 {
		t.Fatalf("expected 3 log rows, got %d", len(daily.entries))
	}
}

func TestDailyPlan_StableWithinDay(t *testing.T) {
	resolver := &fakeResolver{plan: &models.DietPlan{ID: 3, DietName: "Keto"}}
	svc, daily, _ := newTestService(resolver, ketoMeals())

	first, err := svc.DailyPlan(context.Background(), 7)
	if err != nil {
		t.Fatalf("DailyPlan failed: %v", err)
	}
	second, err := svc.DailyPlan(context.Background(), 7)
	if err != nil {
		t.Fatalf("DailyPlan failed: %v", err)
	}

	if len(first.Meals) != len(second.Meals) {
		t.Fatalf("plan changed within a day")
	}
	for i := range first.Meals {
		if first.Meals[i].ID != second.Meals[i].ID {
			t.Fatalf("plan changed within a day: %v vs %v", first.Meals, second.Meals)
		}
	}
	// The second call was served from cache and must not re-log.
	if len(daily.entries) != 3 {
		t.Fatalf("expected 3 log rows after repeated calls, got %d", len(daily.entries))
	}
}

func TestSample_FiltersAndCounts(t *testing.T) {
	svc, _, _ := newTestService(&fakeResolver{}, ketoMeals())

	meals, err := svc.Sample("Keto", 3)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if len(meals) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(meals))
	}

	all, err := svc.Sample("", 10)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected the whole catalog, got %d", len(all))
	}
}
