package models

import "time"

// DietPlan is an immutable catalog entry describing a named dietary pattern
// (e.g. "Keto"). Users get one assigned via the diet recommendation flow.
type DietPlan struct {
	ID          uint      `gorm:"primaryKey;column:diet_plan_id" json:"diet_plan_id"`
	DietName    string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"diet_name" validate:"required,min=2,max=100"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
