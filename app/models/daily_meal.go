package models

import "time"

// DailyMeal is an append-only log of meals shown to a user. Rows are written
// when a paid subscription seeds its first meals and when the daily meal
// plan endpoint samples a fresh set. Entries are not deduplicated across
// days; analytics reads this log as-is.
type DailyMeal struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	MealName string    `gorm:"type:varchar(150);not null" json:"meal_name"`
	PlanType string    `gorm:"type:varchar(100);not null" json:"plan_type"`
	MealDate time.Time `gorm:"type:date;not null;index" json:"meal_date"`
}
