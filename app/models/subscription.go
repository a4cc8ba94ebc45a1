package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// Subscription is one row of the per-user subscription ledger. A user holds
// at most one row with status "active" at a time; every migration cancels
// the current row and inserts a new one instead of mutating it in place.
type Subscription struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UUID      string     `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	UserID    uint       `gorm:"not null;index:idx_subscriptions_user_status,priority:1" json:"user_id"`
	PlanID    uint       `gorm:"not null;index" json:"plan_id"`
	Status    string     `gorm:"type:varchar(20);not null;default:'active';index:idx_subscriptions_user_status,priority:2" json:"status"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `gorm:"type:timestamp;default:null" json:"end_date,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Plan *Plan `gorm:"constraint:OnDelete:CASCADE" json:"plan,omitempty"`
}

// BeforeCreate assigns the public identifier.
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.New().String()
	}
	return nil
}

// IsActive reports whether the row currently grants entitlements: status
// active and not past its end date.
func (s *Subscription) IsActive() bool {
	if s.Status != SubscriptionStatusActive {
		return false
	}
	if s.EndDate != nil && time.Now().After(*s.EndDate) {
		return false
	}
	return true
}

// IsExpired reports whether the row has run past its end date. Rows without
// an end date (lifetime plans) never expire.
func (s *Subscription) IsExpired() bool {
	return s.EndDate != nil && time.Now().After(*s.EndDate)
}

// DaysRemaining returns the days left until expiry, -1 for open-ended rows.
func (s *Subscription) DaysRemaining() int {
	if s.EndDate == nil {
		return -1
	}
	remaining := int(time.Until(*s.EndDate).Hours() / 24)
	if remaining < 0 {
		return 0
	}
	return remaining
}
