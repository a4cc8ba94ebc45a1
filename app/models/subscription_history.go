package models

import "time"

const (
	HistoryActionCreated    = "created"
	HistoryActionUpgraded   = "upgraded"
	HistoryActionDowngraded = "downgraded"
	HistoryActionRenewed    = "renewed"
	HistoryActionCancelled  = "cancelled"
	HistoryActionExpired    = "expired"
)

// SubscriptionHistory is the append-only audit trail of ledger transitions.
// Rows are written inside the same transaction as the transition they record
// and are never updated or deleted. Plan references are nullable so history
// survives plan removal.
type SubscriptionHistory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	SubscriptionID uint      `gorm:"not null;index" json:"subscription_id"`
	Action         string    `gorm:"type:varchar(20);not null" json:"action"`
	FromPlanID     *uint     `gorm:"default:null" json:"from_plan_id,omitempty"`
	ToPlanID       *uint     `gorm:"default:null" json:"to_plan_id,omitempty"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	FromPlan *Plan `gorm:"foreignKey:FromPlanID;constraint:OnDelete:SET NULL" json:"from_plan,omitempty"`
	ToPlan   *Plan `gorm:"foreignKey:ToPlanID;constraint:OnDelete:SET NULL" json:"to_plan,omitempty"`
}
