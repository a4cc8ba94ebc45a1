package subscriptions

import (
	"strings"

	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/app/models"
)

// ActiveTier resolves the user's plan tier straight from the ledger. The
// result is never cached: an admin migrating the user must be visible on the
// user's very next request. Users without a live subscription are free tier.
func ActiveTier(db *gorm.DB, userID uint) string {
	var sub models.Subscription
	err := db.Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		First(&sub).Error
	if err != nil || sub.Plan == nil || !sub.IsActive() {
		return models.TierFree
	}
	return sub.Plan.Tier
}

func normalizeTier(tier string) string {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case models.TierBasic:
		return models.TierBasic
	case models.TierPremium:
		return models.TierPremium
	case models.TierEnterprise:
		return models.TierEnterprise
	default:
		return models.TierFree
	}
}

// tierRank orders plan tiers so migrations can be classified as upgrades or
// downgrades: free < basic < premium < enterprise.
func tierRank(tier string) int {
	switch normalizeTier(tier) {
	case models.TierEnterprise:
		return 3
	case models.TierPremium:
		return 2
	case models.TierBasic:
		return 1
	default:
		return 0
	}
}

// classifyAction derives the history action for a transition into toTier.
// fromTier is empty when the user held no prior subscription.
func classifyAction(fromTier, toTier string) string {
	if fromTier == "" {
		return models.HistoryActionCreated
	}
	from, to := tierRank(fromTier), tierRank(toTier)
	switch {
	case to > from:
		return models.HistoryActionUpgraded
	case to < from:
		return models.HistoryActionDowngraded
	default:
		// Lateral move, e.g. same tier on another billing cycle
		return models.HistoryActionCancelled
	}
}
