package models

import "time"

// Subscription is one entry in the per-user subscription ledger. Superseded
// subscriptions are deactivated, never deleted, so the ledger keeps the full
// history. At most one row per user may have IsActive = true; the
// subscription service owns that transition.
type Subscription struct {
	ID        uint      `gorm:"primaryKey;column:subscription_id" json:"subscription_id"`
	UserID    uint      `gorm:"not null;index:idx_subscriptions_user_active,priority:1" json:"user_id"`
	PlanID    uint      `gorm:"not null" json:"plan_id"`
	PlanType  string    `gorm:"type:varchar(100);not null" json:"plan_type"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	IsActive  bool      `gorm:"not null;default:false;index:idx_subscriptions_user_active,priority:2" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
