package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/app/models"
)

type resetTokenRepository struct {
	db *gorm.DB
}

// NewPasswordResetTokenRepository creates a new reset token repository instance
func NewPasswordResetTokenRepository(db *gorm.DB) PasswordResetTokenRepository {
	return &resetTokenRepository{db: db}
}

// Issue invalidates all outstanding unused tokens for the user and creates a
// fresh one, so at most one token per user can ever redeem.
func (r *resetTokenRepository) Issue(userID uint) (*models.PasswordResetToken, error) {
	var token *models.PasswordResetToken
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PasswordResetToken{}).
			Where("user_id = ? AND used = ?", userID, false).
			Update("used", true).Error; err != nil {
			return err
		}

		t, err := models.NewPasswordResetToken(userID)
		if err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		token = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Get returns the token row for the given value, or models.ErrInvalidToken
// when it does not exist, is used, or has expired.
func (r *resetTokenRepository) Get(tokenValue string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	err := r.db.Where("token = ?", tokenValue).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidToken
		}
		return nil, err
	}
	if !token.IsValid() {
		return nil, models.ErrInvalidToken
	}
	return &token, nil
}

// Consume redeems the token and sets the user's new password hash in one
// transaction. The rows-affected guard on the conditional update makes the
// redeem race-safe: two concurrent requests with the same token can not both
// pass. Every precondition failure maps to models.ErrInvalidToken so callers
// leak nothing about why a token was rejected.
func (r *resetTokenRepository) Consume(tokenValue string, passwordHash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var token models.PasswordResetToken
		err := tx.Where("token = ?", tokenValue).First(&token).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrInvalidToken
			}
			return err
		}
		if token.Used || time.Now().After(token.ExpiresAt) {
			return models.ErrInvalidToken
		}

		res := tx.Model(&models.PasswordResetToken{}).
			Where("token = ? AND used = ?", tokenValue, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrInvalidToken
		}

		return tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Update("password", passwordHash).Error
	})
}
