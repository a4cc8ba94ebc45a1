package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ManuelReschke/PlanFox/app/models"
)

// openTestDB opens a fresh in-memory sqlite database. The users table is
// created by hand because its email column carries MySQL column options
// sqlite does not understand.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.PasswordResetToken{}))
	require.NoError(t, db.Exec(`CREATE TABLE users (
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
	)`).Error)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: "old-hash",
		Role:     models.ROLE_CLIENT,
		Status:   models.STATUS_ACTIVE,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestConsumeRedeemsTokenOnlyOnce(t *testing.T) {
	db := openTestDB(t)
	repo := NewPasswordResetTokenRepository(db)
	user := seedUser(t, db, "once@example.com")

	token, err := repo.Issue(user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Consume(token.Token, "new-hash"))

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "new-hash", updated.Password)

	// the same token must never redeem twice
	err = repo.Consume(token.Token, "other-hash")
	assert.ErrorIs(t, err, models.ErrInvalidToken)

	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "new-hash", updated.Password)
}

func TestConsumeExpiredToken(t *testing.T) {
	db := openTestDB(t)
	repo := NewPasswordResetTokenRepository(db)
	user := seedUser(t, db, "expired@example.com")

	token, err := repo.Issue(user.ID)
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.PasswordResetToken{}).
		Where("token = ?", token.Token).
		Update("expires_at", past).Error)

	_, err = repo.Get(token.Token)
	assert.ErrorIs(t, err, models.ErrInvalidToken)

	err = repo.Consume(token.Token, "new-hash")
	assert.ErrorIs(t, err, models.ErrInvalidToken)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "old-hash", updated.Password)
}

func TestConsumeUnknownToken(t *testing.T) {
	db := openTestDB(t)
	repo := NewPasswordResetTokenRepository(db)

	err := repo.Consume("deadbeef", "new-hash")
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestIssueInvalidatesOutstandingTokens(t *testing.T) {
	db := openTestDB(t)
	repo := NewPasswordResetTokenRepository(db)
	user := seedUser(t, db, "reissue@example.com")

	first, err := repo.Issue(user.ID)
	require.NoError(t, err)
	second, err := repo.Issue(user.ID)
	require.NoError(t, err)

	_, err = repo.Get(first.Token)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
	err = repo.Consume(first.Token, "new-hash")
	assert.ErrorIs(t, err, models.ErrInvalidToken)

	// only the latest token redeems
	require.NoError(t, repo.Consume(second.Token, "new-hash"))
}
