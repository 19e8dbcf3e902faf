package repository

import (
	"github.com/ManuelReschke/Dietly/app/models"
	"gorm.io/gorm"
)

// catalogRepository implements the CatalogRepository interface. The catalog
// tables are seed data, so this repository is read-only.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository instance
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetSubscriptionPlan(id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *catalogRepository) GetSubscriptionPlanByName(name string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.Where("name = ?", name).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *catalogRepository) ListSubscriptionPlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *catalogRepository) GetDietPlan(id uint) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := r.db.First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetDietPlanByName matches case-insensitively; the scoring collaborator
// reports diet types in free-form casing.
func (r *catalogRepository) GetDietPlanByName(name string) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := r.db.Where("LOWER(diet_name) = LOWER(?)", name).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *catalogRepository) ListDietPlans() ([]models.DietPlan, error) {
	var plans []models.DietPlan
	err := r.db.Order("diet_plan_id ASC").Find(&plans).Error
	return plans, err
}

func (r *catalogRepository) ListMealsByDietType(dietType string) ([]models.Meal, error) {
	var meals []models.Meal
	err := r.db.Where("diet_type = ?", dietType).Find(&meals).Error
	return meals, err
}

func (r *catalogRepository) ListMeals() ([]models.Meal, error) {
	var meals []models.Meal
	err := r.db.Find(&meals).Error
	return meals, err
}
