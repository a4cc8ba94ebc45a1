package controllers

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ManuelReschke/PlanFox/app/models"
	"github.com/ManuelReschke/PlanFox/app/repository"
	"github.com/ManuelReschke/PlanFox/internal/pkg/database"
)

var (
	testDBOnce sync.Once
	testDB     *gorm.DB
	testDBErr  error
)

// setupTestDB points the global database handle and repository factory at a
// shared in-memory sqlite database. Every call empties the tables, so tests
// in this package must not run in parallel.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			testDBErr = err
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			testDBErr = err
			return
		}
		// a single connection keeps every query on the same in-memory database
		sqlDB.SetMaxOpenConns(1)

		if err := db.AutoMigrate(
			&models.Plan{},
			&models.Subscription{},
			&models.SubscriptionHistory{},
			&models.PasswordResetToken{},
			&models.UserProfile{},
		); err != nil {
			testDBErr = err
			return
		}
		// the users table carries MySQL column options AutoMigrate cannot
		// translate for sqlite, so the test schema is created by hand
		if err := db.Exec(`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			email TEXT UNIQUE,
			password TEXT,
			role TEXT,
			status TEXT,
			last_login_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`).Error; err != nil {
			testDBErr = err
			return
		}

		database.DB = db
		repository.InitializeFactory(db)
		testDB = db
	})
	require.NoError(t, testDBErr)

	for _, table := range []string{
		"password_reset_tokens",
		"subscription_histories",
		"subscriptions",
		"user_profiles",
		"users",
		"plans",
	} {
		require.NoError(t, testDB.Exec("DELETE FROM "+table).Error)
	}
	return testDB
}

func seedAccount(t *testing.T, db *gorm.DB, email, role, status string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: "irrelevant-hash",
		Role:     role,
		Status:   status,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
