package subscriptions

import "github.com/ManuelReschke/PlanFox/app/models"

// MigrationResult describes a completed ledger transition.
type MigrationResult struct {
	Subscription *models.Subscription `json:"subscription"`
	Action       string               `json:"action"`
	FromPlan     *models.Plan         `json:"from_plan,omitempty"`
	ToPlan       *models.Plan         `json:"to_plan"`
}
