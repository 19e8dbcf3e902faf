package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ManuelReschke/Dietly/app/models"
	"github.com/ManuelReschke/Dietly/app/repository"
	"github.com/ManuelReschke/Dietly/internal/pkg/cache"
)

const (
	// CacheKeyDailyPlan is formatted with user id and date (YYYY-MM-DD).
	CacheKeyDailyPlan = "mealplan:user:%d:%s"
	cacheExpiration   = 24 * time.Hour
)

// DietResolver resolves a user's currently assigned diet plan.
type DietResolver interface {
	CurrentDiet(ctx context.Context, userID uint) (*models.DietPlan, error)
}

// PlanCache memoizes a day's sampled meal plan. The cache is advisory: any
// miss or error falls back to fresh sampling.
type PlanCache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
}

type redisPlanCache struct{}

func (redisPlanCache) Get(key string) (string, error) { return cache.Get(key) }
func (redisPlanCache) Set(key string, value interface{}, expiration time.Duration) error {
	return cache.Set(key, value, expiration)
}

// DailyPlanResult is the daily-meal-plan endpoint payload.
type DailyPlanResult struct {
	Status   string        `json:"status,omitempty"`
	DietType string        `json:"dietType,omitempty"`
	Meals    []models.Meal `json:"meals"`
	Message  string        `json:"message"`
}

// Service selects daily meals for users based on their assigned diet type.
type Service struct {
	catalog    repository.CatalogRepository
	dailyMeals repository.DailyMealRepository
	resolver   DietResolver
	planCache  PlanCache

	now func() time.Time
}

// NewService creates a meal selection service.
func NewService(catalog repository.CatalogRepository, dailyMeals repository.DailyMealRepository, resolver DietResolver) *Service {
	return &Service{
		catalog:    catalog,
		dailyMeals: dailyMeals,
		resolver:   resolver,
		planCache:  redisPlanCache{},
		now:        time.Now,
	}
}

// DailyPlan returns the user's meals for today. A user without an assigned
// diet, or a diet without any catalog meals, gets an empty list with an
// explanatory message rather than an error. The sampled set is memoized per
// user and day so repeated calls within a day show the same plan.
func (s *Service) DailyPlan(ctx context.Context, userID uint) (*DailyPlanResult, error) {
	diet, err := s.resolver.CurrentDiet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if diet == nil {
		return &DailyPlanResult{Meals: []models.Meal{}, Message: "No diet plan assigned yet."}, nil
	}

	dietType := diet.DietName
	today := s.now()
	cacheKey := fmt.Sprintf(CacheKeyDailyPlan, userID, today.Format("2006-01-02"))

	if cached, ok := s.cachedPlan(cacheKey); ok {
		return &DailyPlanResult{
			Status:   "success",
			DietType: dietType,
			Meals:    cached,
			Message:  fmt.Sprintf("Here are your meals for the %s diet!", dietType),
		}, nil
	}

	candidates, err := s.catalog.ListMealsByDietType(dietType)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &DailyPlanResult{
			Meals:   []models.Meal{},
			Message: fmt.Sprintf("No meals found for %s.", dietType),
		}, nil
	}

	meals := sampleWithoutReplacement(candidates, 3)

	entries := make([]models.DailyMeal, 0, len(meals))
	for _, m := range meals {
		entries = append(entries, models.DailyMeal{
			UserID:   userID,
			MealName: m.MealName,
			PlanType: dietType,
			MealDate: today,
		})
	}
	if err := s.dailyMeals.CreateBatch(entries); err != nil {
		return nil, err
	}

	s.storePlan(cacheKey, meals)

	return &DailyPlanResult{
		Status:   "success",
		DietType: dietType,
		Meals:    meals,
		Message:  fmt.Sprintf("Here are your meals for the %s diet!", dietType),
	}, nil
}

// Sample draws count distinct meals from the catalog, filtered by diet type
// when one is given. This is the seeding policy used at subscription time.
func (s *Service) Sample(dietType string, count int) ([]models.Meal, error) {
	var (
		candidates []models.Meal
		err        error
	)
	if dietType == "" {
		candidates, err = s.catalog.ListMeals()
	} else {
		candidates, err = s.catalog.ListMealsByDietType(dietType)
	}
	if err != nil {
		return nil, err
	}
	return sampleWithoutReplacement(candidates, count), nil
}

func (s *Service) cachedPlan(key string) ([]models.Meal, bool) {
	if s.planCache == nil {
		return nil, false
	}
	raw, err := s.planCache.Get(key)
	if err != nil {
		return nil, false
	}
	var meals []models.Meal
	if err := json.Unmarshal([]byte(raw), &meals); err != nil {
		return nil, false
	}
	return meals, true
}

func (s *Service) storePlan(key string, meals []models.Meal) {
	if s.planCache == nil {
		return
	}
	raw, err := json.Marshal(meals)
	if err != nil {
		return
	}
	if err := s.planCache.Set(key, string(raw), cacheExpiration); err != nil {
		log.Printf("daily plan cache write failed: %v", err)
	}
}
