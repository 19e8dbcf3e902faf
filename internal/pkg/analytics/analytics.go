package analytics

import (
	"encoding/json"
	"log"
	"time"

	"github.com/ManuelReschke/Dietly/app/models"
	"github.com/ManuelReschke/Dietly/internal/pkg/cache"
	"github.com/ManuelReschke/Dietly/internal/pkg/database"
)

const (
	CacheKeySubscriptionsPerPlan = "analytics:subscriptions:per-plan"
	CacheKeyMealsPerDietType     = "analytics:meals:per-diet-type"
	CacheKeyWeeklySubscribers    = "analytics:subscriptions:weekly"
	CacheExpiration              = 30 * time.Minute

	weeklyWindowWeeks = 8
)

// PlanCount is the number of active subscriptions per plan.
type PlanCount struct {
	PlanName string `json:"plan_name"`
	Total    int    `json:"total"`
}

// DietTypeCount is the number of catalog meals per diet type.
type DietTypeCount struct {
	DietType string `json:"diet_type"`
	Total    int    `json:"total"`
}

// WeeklySubscribers is the number of subscriptions started in an ISO week.
type WeeklySubscribers struct {
	Week    int `json:"week"`
	NewSubs int `json:"new_subs"`
}

// SubscriptionsPerPlan returns active subscription counts per catalog plan,
// served from cache when fresh.
func SubscriptionsPerPlan() ([]PlanCount, error) {
	if out, ok := fromCache[[]PlanCount](CacheKeySubscriptionsPerPlan); ok {
		return out, nil
	}

	var counts []PlanCount
	err := database.GetDB().Model(&models.Subscription{}).
		Select("subscription_plans.name AS plan_name, COUNT(*) AS total").
		Joins("JOIN subscription_plans ON subscriptions.plan_id = subscription_plans.subscription_id").
		Where("subscriptions.is_active = ?", true).
		Group("subscription_plans.name").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	toCache(CacheKeySubscriptionsPerPlan, counts)
	return counts, nil
}

// MealsPerDietType returns catalog meal counts grouped by diet type.
func MealsPerDietType() ([]DietTypeCount, error) {
	if out, ok := fromCache[[]DietTypeCount](CacheKeyMealsPerDietType); ok {
		return out, nil
	}

	var counts []DietTypeCount
	err := database.GetDB().Model(&models.Meal{}).
		Select("diet_type, COUNT(*) AS total").
		Group("diet_type").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	toCache(CacheKeyMealsPerDietType, counts)
	return counts, nil
}

// WeeklyNewSubscribers returns subscription starts per ISO week over the
// last eight weeks.
func WeeklyNewSubscribers() ([]WeeklySubscribers, error) {
	if out, ok := fromCache[[]WeeklySubscribers](CacheKeyWeeklySubscribers); ok {
		return out, nil
	}

	since := time.Now().AddDate(0, 0, -7*weeklyWindowWeeks)

	var weeks []WeeklySubscribers
	err := database.GetDB().Model(&models.Subscription{}).
		Select("WEEK(start_date, 3) AS week, COUNT(*) AS new_subs").
		Where("start_date >= ?", since.Format("2006-01-02")).
		Group("WEEK(start_date, 3)").
		Order("week ASC").
		Scan(&weeks).Error
	if err != nil {
		return nil, err
	}

	toCache(CacheKeyWeeklySubscribers, weeks)
	return weeks, nil
}

// InvalidateAll drops every analytics cache entry; called after writes that
// would make the dashboards stale.
func InvalidateAll() {
	for _, key := range []string{CacheKeySubscriptionsPerPlan, CacheKeyMealsPerDietType, CacheKeyWeeklySubscribers} {
		if err := cache.Delete(key); err != nil && !cache.IsMissErr(err) {
			log.Printf("analytics cache invalidation failed for %s: %v", key, err)
		}
	}
}

func fromCache[T any](key string) (T, bool) {
	var out T
	raw, err := cache.Get(key)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, false
	}
	return out, true
}

func toCache(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := cache.Set(key, string(raw), CacheExpiration); err != nil {
		log.Printf("analytics cache write failed for %s: %v", key, err)
	}
}
