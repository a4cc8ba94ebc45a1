package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ManuelReschke/PlanFox/app/models"
)

func openLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Plan{},
		&models.Subscription{},
		&models.SubscriptionHistory{},
	))
	return db
}

func seedLedgerPlans(t *testing.T, db *gorm.DB) (free, premium *models.Plan) {
	t.Helper()

	free = &models.Plan{Name: "Free", Slug: models.FreePlanSlug, Tier: models.TierFree, BillingCycle: models.BillingCycleMonthly, IsActive: true}
	premium = &models.Plan{Name: "Premium", Slug: "premium", Tier: models.TierPremium, BillingCycle: models.BillingCycleMonthly, IsActive: true}
	require.NoError(t, db.Create(free).Error)
	require.NoError(t, db.Create(premium).Error)
	return free, premium
}

func TestActiveTierWithoutSubscription(t *testing.T) {
	db := openLedgerDB(t)
	seedLedgerPlans(t, db)

	assert.Equal(t, models.TierFree, ActiveTier(db, 42))
}

// A tier change by an admin must be visible on the user's next request,
// with no stale value surviving from earlier lookups.
func TestActiveTierFollowsMigration(t *testing.T) {
	db := openLedgerDB(t)
	_, premium := seedLedgerPlans(t, db)
	svc := NewServiceFromDB(db)

	_, err := svc.CreateInitial(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.TierFree, ActiveTier(db, 7))

	_, err = svc.Migrate(context.Background(), 7, premium.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TierPremium, ActiveTier(db, 7))

	_, err = svc.MigrateToFree(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.TierFree, ActiveTier(db, 7))
}

func TestActiveTierIgnoresLapsedSubscription(t *testing.T) {
	db := openLedgerDB(t)
	_, premium := seedLedgerPlans(t, db)
	svc := NewServiceFromDB(db)

	_, err := svc.Migrate(context.Background(), 9, premium.ID)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Subscription{}).
		Where("user_id = ?", 9).
		Update("end_date", past).Error)

	assert.Equal(t, models.TierFree, ActiveTier(db, 9))
}
