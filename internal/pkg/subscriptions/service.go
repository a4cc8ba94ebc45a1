package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/app/models"
)

var (
	// ErrPlanNotFound is returned when the target plan does not exist.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrPlanInactive is returned when the target plan is disabled.
	ErrPlanInactive = errors.New("plan is not active")
	// ErrSamePlan is returned when the user already holds the target plan.
	// Migrating onto the held plan is a conflict, not a silent no-op.
	ErrSamePlan = errors.New("user already subscribed to this plan")
	// ErrNoSubscription is returned when a renewal finds no subscription row.
	ErrNoSubscription = errors.New("no subscription to renew")
	// ErrFreePlanRenewal is returned when renewing a free-tier subscription.
	ErrFreePlanRenewal = errors.New("free plan cannot be renewed")
)

// Service runs subscription ledger transitions. Every transition cancels
// the current active row, inserts the new one and appends a history row in
// a single transaction, keeping the one-active-subscription invariant.
type Service struct {
	repo Repository
}

// NewService creates a subscription service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a subscription service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Migrate moves the user onto the given plan. The caller is responsible for
// the admin capability check; the service enforces plan preconditions and
// the ledger invariant.
func (s *Service) Migrate(ctx context.Context, userID uint, planID uint) (*MigrationResult, error) {
	_ = ctx
	plan, err := s.repo.GetPlan(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.migrate(userID, plan)
}

// MigrateToFree moves the user back onto the canonical free plan.
func (s *Service) MigrateToFree(ctx context.Context, userID uint) (*MigrationResult, error) {
	_ = ctx
	plan, err := s.repo.GetPlanBySlug(models.FreePlanSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.migrate(userID, plan)
}

// CreateInitial gives a freshly registered user the canonical free plan and
// the opening "created" history row.
func (s *Service) CreateInitial(ctx context.Context, userID uint) (*MigrationResult, error) {
	return s.MigrateToFree(ctx, userID)
}

func (s *Service) migrate(userID uint, plan *models.Plan) (*MigrationResult, error) {
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}

	var result *MigrationResult
	err := s.repo.Transaction(func(tx Repository) error {
		current, err := tx.GetActiveSubscription(userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		fromTier := ""
		var fromPlan *models.Plan
		var fromPlanID *uint
		if current != nil {
			if current.PlanID == plan.ID {
				return ErrSamePlan
			}
			if current.Plan != nil {
				fromTier = current.Plan.Tier
				fromPlan = current.Plan
				id := current.Plan.ID
				fromPlanID = &id
			}
			if err := tx.SetSubscriptionStatus(current.ID, models.SubscriptionStatusCancelled); err != nil {
				return err
			}
		}

		now := time.Now()
		sub := &models.Subscription{
			UserID:    userID,
			PlanID:    plan.ID,
			Status:    models.SubscriptionStatusActive,
			StartDate: now,
			EndDate:   plan.PeriodEnd(now),
		}
		if err := tx.CreateSubscription(sub); err != nil {
			return err
		}

		action := classifyAction(fromTier, plan.Tier)
		planID := plan.ID
		entry := &models.SubscriptionHistory{
			UserID:         userID,
			SubscriptionID: sub.ID,
			Action:         action,
			FromPlanID:     fromPlanID,
			ToPlanID:       &planID,
			Notes:          fmt.Sprintf("migrated to plan %q", plan.Slug),
		}
		if err := tx.AppendHistory(entry); err != nil {
			return err
		}

		sub.Plan = plan
		result = &MigrationResult{
			Subscription: sub,
			Action:       action,
			FromPlan:     fromPlan,
			ToPlan:       plan,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Renew extends the user's latest paid subscription for another billing
// period and reactivates it. A still-running subscription is extended from
// its current end date; a cancelled or expired one restarts from now. The
// period change and the "renewed" history row commit in one transaction.
func (s *Service) Renew(ctx context.Context, userID uint) (*MigrationResult, error) {
	_ = ctx
	var result *MigrationResult
	err := s.repo.Transaction(func(tx Repository) error {
		sub, err := tx.GetLatestSubscription(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoSubscription
			}
			return err
		}
		plan := sub.Plan
		if plan == nil {
			if plan, err = tx.GetPlan(sub.PlanID); err != nil {
				return err
			}
		}
		if plan.Tier == models.TierFree {
			return ErrFreePlanRenewal
		}

		now := time.Now()
		start := sub.StartDate
		base := now
		if sub.Status == models.SubscriptionStatusActive && sub.EndDate != nil && sub.EndDate.After(now) {
			base = *sub.EndDate
		} else {
			start = now
		}
		end := plan.PeriodEnd(base)
		if err := tx.SetSubscriptionPeriod(sub.ID, start, end, models.SubscriptionStatusActive); err != nil {
			return err
		}
		sub.StartDate = start
		sub.EndDate = end
		sub.Status = models.SubscriptionStatusActive

		planID := plan.ID
		entry := &models.SubscriptionHistory{
			UserID:         userID,
			SubscriptionID: sub.ID,
			Action:         models.HistoryActionRenewed,
			FromPlanID:     &planID,
			ToPlanID:       &planID,
			Notes:          fmt.Sprintf("renewed plan %q", plan.Slug),
		}
		if err := tx.AppendHistory(entry); err != nil {
			return err
		}

		sub.Plan = plan
		result = &MigrationResult{
			Subscription: sub,
			Action:       models.HistoryActionRenewed,
			FromPlan:     plan,
			ToPlan:       plan,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CurrentSubscription returns the user's active subscription with its plan,
// or nil when the user holds none.
func (s *Service) CurrentSubscription(ctx context.Context, userID uint) (*models.Subscription, error) {
	_ = ctx
	sub, err := s.repo.GetActiveSubscription(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

// AvailablePlans lists active plans for migration pages, optionally
// excluding the currently held plan and free tiers.
func (s *Service) AvailablePlans(ctx context.Context, excludePlanID uint, paidOnly bool) ([]models.Plan, error) {
	_ = ctx
	return s.repo.ListActivePlans(excludePlanID, paidOnly)
}

// History returns the user's audit trail, newest first.
func (s *Service) History(ctx context.Context, userID uint) ([]models.SubscriptionHistory, error) {
	_ = ctx
	return s.repo.ListHistoryByUser(userID)
}

// ExpireOverdue sweeps active subscriptions past their end date to status
// expired and records the transition. Returns how many rows were expired.
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	_ = ctx
	count := 0
	err := s.repo.Transaction(func(tx Repository) error {
		overdue, err := tx.ListOverdueActive(time.Now())
		if err != nil {
			return err
		}
		for i := range overdue {
			sub := &overdue[i]
			if err := tx.SetSubscriptionStatus(sub.ID, models.SubscriptionStatusExpired); err != nil {
				return err
			}
			planID := sub.PlanID
			entry := &models.SubscriptionHistory{
				UserID:         sub.UserID,
				SubscriptionID: sub.ID,
				Action:         models.HistoryActionExpired,
				FromPlanID:     &planID,
				Notes:          "subscription period ended",
			}
			if err := tx.AppendHistory(entry); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
