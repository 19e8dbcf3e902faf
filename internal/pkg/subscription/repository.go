package subscription

import (
	"github.com/ManuelReschke/Dietly/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the subscription service.
type Repository interface {
	GetPlan(planID uint) (*models.SubscriptionPlan, error)
	GetPlanByName(name string) (*models.SubscriptionPlan, error)
	CurrentForUser(userID uint) (*CurrentPlan, error)
	// ActivateExclusive deactivates every active subscription of the user,
	// inserts sub as the single active one, points users.subscription_id at
	// it and appends the given daily meal rows, all in one transaction.
	ActivateExclusive(sub *models.Subscription, seed []models.DailyMeal) error
	CountSeededMeals(userID uint) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetPlan(planID uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.First(&plan, planID).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) GetPlanByName(name string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.Where("name = ?", name).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) CurrentForUser(userID uint) (*CurrentPlan, error) {
	var current CurrentPlan
	err := r.db.Model(&models.Subscription{}).
		Select(`subscriptions.subscription_id, subscriptions.plan_id,
			subscription_plans.name AS plan_name, subscription_plans.price,
			subscription_plans.duration_months, subscriptions.start_date,
			subscriptions.end_date, subscriptions.is_active`).
		Joins("JOIN subscription_plans ON subscriptions.plan_id = subscription_plans.subscription_id").
		Where("subscriptions.user_id = ? AND subscriptions.is_active = ?", userID, true).
		Order("subscriptions.start_date DESC").
		Limit(1).
		Scan(&current).Error
	if err != nil {
		return nil, err
	}
	if current.SubscriptionID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &current, nil
}

func (r *gormRepository) ActivateExclusive(sub *models.Subscription, seed []models.DailyMeal) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Locking the user's ledger rows serializes concurrent subscribes for
		// the same user across server instances. Different users touch
		// disjoint rows and do not block each other.
		var priors []models.Subscription
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND is_active = ?", sub.UserID, true).
			Find(&priors).Error; err != nil {
			return err
		}

		if len(priors) > 0 {
			if err := tx.Model(&models.Subscription{}).
				Where("user_id = ? AND is_active = ?", sub.UserID, true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}

		sub.IsActive = true
		if err := tx.Create(sub).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("user_id = ?", sub.UserID).
			Update("subscription_id", sub.ID).Error; err != nil {
			return err
		}

		if len(seed) > 0 {
			if err := tx.Create(&seed).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *gormRepository) CountSeededMeals(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DailyMeal{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
