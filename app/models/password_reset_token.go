package models

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// ResetTokenTTL is how long a password reset token stays redeemable.
const ResetTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for every reset-token precondition failure:
// unknown token, already consumed, or expired. One error kind on purpose so
// responses never leak which check failed.
var ErrInvalidToken = errors.New("invalid or expired reset token")

// PasswordResetToken is a short-lived, single-use credential recovery token.
// Lifecycle: issued -> consumed (Used=true), or issued -> expired once
// ExpiresAt passes; both are terminal.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
}

// NewPasswordResetToken issues a token for the user with a fresh random
// value and a 24h expiry.
func NewPasswordResetToken(userID uint) (*PasswordResetToken, error) {
	value, err := GenerateResetTokenValue()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &PasswordResetToken{
		UserID:    userID,
		Token:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(ResetTokenTTL),
	}, nil
}

// GenerateResetTokenValue returns 32 random bytes hex encoded.
func GenerateResetTokenValue() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IsValid reports whether the token can still be redeemed.
func (t *PasswordResetToken) IsValid() bool {
	return !t.Used && time.Now().Before(t.ExpiresAt)
}
