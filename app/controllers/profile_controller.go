package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/app/repository"
	"github.com/ManuelReschke/PlanFox/internal/pkg/usercontext"
)

// HandleProfile returns the authenticated user's account and profile.
func HandleProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	profile, err := repos.User.GetProfile(userCtx.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load profile")
	}

	response := fiber.Map{
		"user":    user,
		"profile": profile,
	}
	if profile != nil {
		response["profile_complete"] = profile.IsComplete()
	}

	return c.JSON(response)
}

// HandleProfileEdit updates the owner's profile fields from a form post.
// Only the fields present in the request change.
func HandleProfileEdit(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	profile, err := repos.User.GetProfile(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Profile not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load profile")
	}

	form := struct {
		Bio                *string `form:"bio" json:"bio"`
		Location           *string `form:"location" json:"location"`
		Website            *string `form:"website" json:"website"`
		BirthDate          *string `form:"birth_date" json:"birth_date"`
		EmailNotifications *bool   `form:"email_notifications" json:"email_notifications"`
		SMSNotifications   *bool   `form:"sms_notifications" json:"sms_notifications"`
	}{}
	if err := c.BodyParser(&form); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Could not parse request body")
	}

	if form.Bio != nil {
		profile.Bio = strings.TrimSpace(*form.Bio)
	}
	if form.Location != nil {
		profile.Location = strings.TrimSpace(*form.Location)
	}
	if form.Website != nil {
		profile.Website = strings.TrimSpace(*form.Website)
	}
	if form.BirthDate != nil {
		raw := strings.TrimSpace(*form.BirthDate)
		if raw == "" {
			profile.BirthDate = nil
		} else {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return jsonError(c, fiber.StatusBadRequest, "invalid_birth_date", "Birth date must be YYYY-MM-DD")
			}
			profile.BirthDate = &parsed
		}
	}
	if form.EmailNotifications != nil {
		profile.EmailNotifications = *form.EmailNotifications
	}
	if form.SMSNotifications != nil {
		profile.SMSNotifications = *form.SMSNotifications
	}

	if err := validator.New().Struct(profile); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repos.User.SaveProfile(profile); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save profile")
	}

	return c.JSON(fiber.Map{
		"profile":          profile,
		"profile_complete": profile.IsComplete(),
	})
}
