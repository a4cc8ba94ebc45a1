package subscriptions

import (
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/app/models"
)

// Repository provides the DB operations used by the subscription service.
// Transaction runs fn against a repository bound to one transaction so the
// cancel-old/insert-new/append-history triplet commits or rolls back as a
// unit.
type Repository interface {
	Transaction(fn func(Repository) error) error

	GetPlan(id uint) (*models.Plan, error)
	GetPlanBySlug(slug string) (*models.Plan, error)
	ListActivePlans(excludePlanID uint, paidOnly bool) ([]models.Plan, error)

	GetActiveSubscription(userID uint) (*models.Subscription, error)
	GetLatestSubscription(userID uint) (*models.Subscription, error)
	CreateSubscription(sub *models.Subscription) error
	SetSubscriptionStatus(id uint, status string) error
	SetSubscriptionPeriod(id uint, start time.Time, end *time.Time, status string) error
	ListOverdueActive(now time.Time) ([]models.Subscription, error)

	AppendHistory(entry *models.SubscriptionHistory) error
	ListHistoryByUser(userID uint) ([]models.SubscriptionHistory, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) GetPlan(id uint) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) GetPlanBySlug(slug string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.Where("slug = ?", slug).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) ListActivePlans(excludePlanID uint, paidOnly bool) ([]models.Plan, error) {
	query := r.db.Where("is_active = ?", true)
	if excludePlanID != 0 {
		query = query.Where("id <> ?", excludePlanID)
	}
	if paidOnly {
		query = query.Where("tier <> ?", models.TierFree)
	}

	var plans []models.Plan
	err := query.Order("sort_order ASC, price ASC").Find(&plans).Error
	return plans, err
}

func (r *gormRepository) GetActiveSubscription(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) GetLatestSubscription(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Plan").
		Where("user_id = ?", userID).
		Order("id DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) CreateSubscription(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *gormRepository) SetSubscriptionStatus(id uint, status string) error {
	return r.db.Model(&models.Subscription{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *gormRepository) SetSubscriptionPeriod(id uint, start time.Time, end *time.Time, status string) error {
	return r.db.Model(&models.Subscription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"start_date": start,
			"end_date":   end,
			"status":     status,
		}).Error
}

func (r *gormRepository) ListOverdueActive(now time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Plan").
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", models.SubscriptionStatusActive, now).
		Find(&subs).Error
	return subs, err
}

func (r *gormRepository) AppendHistory(entry *models.SubscriptionHistory) error {
	return r.db.Create(entry).Error
}

func (r *gormRepository) ListHistoryByUser(userID uint) ([]models.SubscriptionHistory, error) {
	var entries []models.SubscriptionHistory
	err := r.db.Preload("FromPlan").Preload("ToPlan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
