package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/app/models"
	"github.com/ManuelReschke/PlanFox/app/repository"
	"github.com/ManuelReschke/PlanFox/internal/pkg/database"
	"github.com/ManuelReschke/PlanFox/internal/pkg/subscriptions"
	"github.com/ManuelReschke/PlanFox/internal/pkg/usercontext"
)

// HandleGetUserInfo returns account information for the authenticated user.
func HandleGetUserInfo(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	account, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user"})
	}

	svc := subscriptions.NewServiceFromDB(database.GetDB())
	sub, err := svc.CurrentSubscription(c.Context(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load subscription"})
	}

	plan := models.TierFree
	var subSummary interface{}
	if sub != nil {
		if sub.Plan != nil {
			plan = sub.Plan.Tier
		}
		subSummary = fiber.Map{
			"uuid":           sub.UUID,
			"status":         sub.Status,
			"start_date":     sub.StartDate.UTC().Format(time.RFC3339),
			"end_date":       formatTimePtr(sub.EndDate),
			"days_remaining": sub.DaysRemaining(),
		}
	}

	response := fiber.Map{
		"id":            account.ID,
		"username":      account.Name,
		"email":         account.Email,
		"role":          account.Role,
		"is_admin":      account.IsAdmin(),
		"is_active":     account.IsActive(),
		"plan":          plan,
		"subscription":  subSummary,
		"member_since":  account.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at": formatTimePtr(account.LastLoginAt),
	}

	return c.JSON(response)
}
