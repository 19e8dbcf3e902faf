package models

import "time"

// SubscriptionPlan is an immutable catalog entry describing a purchasable
// price/duration tier. Rows come from seed migrations and are never written
// at runtime.
type SubscriptionPlan struct {
	ID             uint      `gorm:"primaryKey;column:subscription_id" json:"subscription_id"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name" validate:"required,min=2,max=100"`
	Price          int       `gorm:"not null" json:"price" validate:"gte=0"`
	DurationMonths int       `gorm:"not null" json:"duration_months" validate:"gte=1"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
