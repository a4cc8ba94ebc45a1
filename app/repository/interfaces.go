package repository

import (
	"github.com/ManuelReschke/PlanFox/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	CreateWithProfile(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	CountByRole(role string) (int64, error)
	CountByStatus(status string) (int64, error)
	Search(query string) ([]models.User, error)
	GetWithPlan(offset, limit int) ([]UserWithPlan, error)

	GetProfile(userID uint) (*models.UserProfile, error)
	SaveProfile(profile *models.UserProfile) error
}

// PasswordResetTokenRepository defines the lifecycle operations for reset
// tokens. Consume performs the terminal transition atomically.
type PasswordResetTokenRepository interface {
	// Issue invalidates the user's outstanding unused tokens and persists
	// a fresh one.
	Issue(userID uint) (*models.PasswordResetToken, error)
	// Get returns the token row for a raw token value.
	Get(token string) (*models.PasswordResetToken, error)
	// Consume validates the token, sets the user's new password hash and
	// marks the token used in one transaction. Returns
	// models.ErrInvalidToken for every precondition failure.
	Consume(token string, newPasswordHash string) error
}

// UserWithPlan pairs a user with the tier currently granting entitlements.
type UserWithPlan struct {
	User     models.User
	PlanName string
	PlanTier string
}

// Repositories struct holds all repository instances
type Repositories struct {
	User       UserRepository
	ResetToken PasswordResetTokenRepository
}
