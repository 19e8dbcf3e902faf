package repository

import (
	"time"

	"github.com/ManuelReschke/Dietly/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateDietPlan(userID uint, dietPlanID uint) error
	Count() (int64, error)
}

// CatalogRepository defines read access to the immutable plan and meal catalogs
type CatalogRepository interface {
	GetSubscriptionPlan(id uint) (*models.SubscriptionPlan, error)
	GetSubscriptionPlanByName(name string) (*models.SubscriptionPlan, error)
	ListSubscriptionPlans() ([]models.SubscriptionPlan, error)
	GetDietPlan(id uint) (*models.DietPlan, error)
	GetDietPlanByName(name string) (*models.DietPlan, error)
	ListDietPlans() ([]models.DietPlan, error)
	ListMealsByDietType(dietType string) ([]models.Meal, error)
	ListMeals() ([]models.Meal, error)
}

// DailyMealRepository defines the interface for the append-only daily meal log
type DailyMealRepository interface {
	CreateBatch(entries []models.DailyMeal) error
	ListByUserAndDate(userID uint, date time.Time) ([]models.DailyMeal, error)
	CountByUser(userID uint) (int64, error)
}

// Repositories holds all repository instances
type Repositories struct {
	User      UserRepository
	Catalog   CatalogRepository
	DailyMeal DailyMealRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Catalog:   NewCatalogRepository(db),
		DailyMeal: NewDailyMealRepository(db),
	}
}
