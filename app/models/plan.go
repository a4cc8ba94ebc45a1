package models

import (
	"fmt"
	"time"
)

const (
	TierFree       = "free"
	TierBasic      = "basic"
	TierPremium    = "premium"
	TierEnterprise = "enterprise"
)

const (
	BillingCycleMonthly  = "monthly"
	BillingCycleYearly   = "yearly"
	BillingCycleLifetime = "lifetime"
)

// FreePlanSlug identifies the canonical free plan every new account starts on.
const FreePlanSlug = "free"

// Plan is admin-managed reference data describing a subscription tier,
// its billing cycle, numeric limits and feature flags. Limits use 0 to
// mean unlimited.
type Plan struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,max=100"`
	Slug           string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug" validate:"required,max=100"`
	Description    string    `gorm:"type:text" json:"description"`
	Tier           string    `gorm:"type:varchar(20);not null;default:'free';index" json:"tier" validate:"oneof=free basic premium enterprise"`
	Price          float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	BillingCycle   string    `gorm:"type:varchar(20);not null;default:'monthly'" json:"billing_cycle" validate:"oneof=monthly yearly lifetime"`
	MaxUsers       uint      `gorm:"not null;default:1" json:"max_users"`
	MaxProjects    uint      `gorm:"not null;default:1" json:"max_projects"`
	StorageLimitGB uint      `gorm:"not null;default:1" json:"storage_limit_gb"`

	HasAPIAccess       bool `gorm:"default:false" json:"has_api_access"`
	HasPrioritySupport bool `gorm:"default:false" json:"has_priority_support"`
	HasAnalytics       bool `gorm:"default:false" json:"has_analytics"`
	HasCustomBranding  bool `gorm:"default:false" json:"has_custom_branding"`

	IsActive   bool `gorm:"default:true;index" json:"is_active"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`
	SortOrder  uint `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsFree reports whether this plan carries no charge.
func (p *Plan) IsFree() bool {
	return p.Tier == TierFree
}

// PeriodEnd computes when a subscription period starting at start runs out.
// Lifetime plans do not expire.
func (p *Plan) PeriodEnd(start time.Time) *time.Time {
	switch p.BillingCycle {
	case BillingCycleMonthly:
		end := start.AddDate(0, 0, 30)
		return &end
	case BillingCycleYearly:
		end := start.AddDate(0, 0, 365)
		return &end
	default:
		return nil
	}
}

// Features returns the human-readable feature list for the plan.
func (p *Plan) Features() []string {
	features := make([]string, 0, 7)

	if p.MaxUsers == 0 {
		features = append(features, "Unlimited users")
	} else {
		features = append(features, fmt.Sprintf("%d user(s)", p.MaxUsers))
	}
	if p.MaxProjects == 0 {
		features = append(features, "Unlimited projects")
	} else {
		features = append(features, fmt.Sprintf("%d project(s)", p.MaxProjects))
	}
	if p.StorageLimitGB == 0 {
		features = append(features, "Unlimited storage")
	} else {
		features = append(features, fmt.Sprintf("%d GB storage", p.StorageLimitGB))
	}

	if p.HasAPIAccess {
		features = append(features, "API access")
	}
	if p.HasPrioritySupport {
		features = append(features, "Priority support")
	}
	if p.HasAnalytics {
		features = append(features, "Advanced analytics")
	}
	if p.HasCustomBranding {
		features = append(features, "Custom branding")
	}

	return features
}
