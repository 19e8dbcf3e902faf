package repository

import (
	"time"

	"github.com/ManuelReschke/Dietly/app/models"
	"gorm.io/gorm"
)

// dailyMealRepository implements the DailyMealRepository interface
type dailyMealRepository struct {
	db *gorm.DB
}

// NewDailyMealRepository creates a new daily meal repository instance
func NewDailyMealRepository(db *gorm.DB) DailyMealRepository {
	return &dailyMealRepository{db: db}
}

// CreateBatch appends a set of shown meals to the log in one insert
func (r *dailyMealRepository) CreateBatch(entries []models.DailyMeal) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

// ListByUserAndDate returns the meals logged for a user on a given day
func (r *dailyMealRepository) ListByUserAndDate(userID uint, date time.Time) ([]models.DailyMeal, error) {
	var entries []models.DailyMeal
	day := date.Format("2006-01-02")
	err := r.db.Where("user_id = ? AND meal_date = ?", userID, day).Find(&entries).Error
	return entries, err
}

// CountByUser returns how many meals were ever logged for a user
func (r *dailyMealRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DailyMeal{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
