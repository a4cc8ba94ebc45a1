package models

import "gorm.io/gorm"

// DefaultPlans returns the catalog seeded on fresh installs: one plan per
// tier with the limits and feature flags the product ships with.
func DefaultPlans() []Plan {
	return []Plan{
		{
			Name:           "Free",
			Slug:           FreePlanSlug,
			Description:    "Entry plan with limited features",
			Tier:           TierFree,
			Price:          0,
			BillingCycle:   BillingCycleMonthly,
			MaxUsers:       1,
			MaxProjects:    3,
			StorageLimitGB: 1,
			IsActive:       true,
			SortOrder:      1,
		},
		{
			Name:           "Basic",
			Slug:           "basic",
			Description:    "Small teams, core features",
			Tier:           TierBasic,
			Price:          9.99,
			BillingCycle:   BillingCycleMonthly,
			MaxUsers:       5,
			MaxProjects:    10,
			StorageLimitGB: 10,
			HasAPIAccess:   true,
			IsActive:       true,
			SortOrder:      2,
		},
		{
			Name:               "Premium",
			Slug:               "premium",
			Description:        "All premium features, unlimited usage",
			Tier:               TierPremium,
			Price:              29.99,
			BillingCycle:       BillingCycleMonthly,
			MaxUsers:           0,
			MaxProjects:        0,
			StorageLimitGB:     0,
			HasAPIAccess:       true,
			HasPrioritySupport: true,
			HasAnalytics:       true,
			HasCustomBranding:  true,
			IsActive:           true,
			IsFeatured:         true,
			SortOrder:          3,
		},
		{
			Name:               "Enterprise",
			Slug:               "enterprise",
			Description:        "Yearly billing, dedicated support",
			Tier:               TierEnterprise,
			Price:              299.99,
			BillingCycle:       BillingCycleYearly,
			MaxUsers:           0,
			MaxProjects:        0,
			StorageLimitGB:     0,
			HasAPIAccess:       true,
			HasPrioritySupport: true,
			HasAnalytics:       true,
			HasCustomBranding:  true,
			IsActive:           true,
			SortOrder:          4,
		},
	}
}

// EnsureDefaultPlans creates any missing default plan, keyed by slug.
// Existing plans are left untouched so admin edits survive restarts.
func EnsureDefaultPlans(db *gorm.DB) error {
	for _, plan := range DefaultPlans() {
		p := plan
		if err := db.Where("slug = ?", p.Slug).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

// EnsureFreePlan creates the canonical free plan if it is missing.
func EnsureFreePlan(db *gorm.DB) error {
	free := DefaultPlans()[0]
	return db.Where("slug = ?", FreePlanSlug).FirstOrCreate(&free).Error
}
