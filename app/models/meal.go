package models

import "time"

// Meal is an immutable catalog entry. DietType references DietPlan.DietName,
// mirroring how the meal catalog is grouped per dietary pattern.
type Meal struct {
	ID          uint      `gorm:"primaryKey;column:meal_id" json:"meal_id"`
	MealName    string    `gorm:"type:varchar(150);not null" json:"meal_name" validate:"required,min=2,max=150"`
	Description string    `gorm:"type:text" json:"description"`
	DietType    string    `gorm:"type:varchar(100);not null;index" json:"diet_type" validate:"required"`
	Calories    float64   `gorm:"not null;default:0" json:"calories"`
	ProteinG    float64   `gorm:"not null;default:0" json:"protein_g"`
	CarbsG      float64   `gorm:"not null;default:0" json:"carbs_g"`
	FatsG       float64   `gorm:"not null;default:0" json:"fats_g"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	ImageURL    string    `gorm:"type:varchar(255);default:null" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
