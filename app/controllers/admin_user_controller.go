package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/app/models"
	"github.com/ManuelReschke/PlanFox/app/repository"
	"github.com/ManuelReschke/PlanFox/internal/pkg/database"
	"github.com/ManuelReschke/PlanFox/internal/pkg/subscriptions"
)

const adminUserPageSize = 50

// HandleAdminUserList returns the paginated user overview with role and
// status counts and each user's currently active plan.
func HandleAdminUserList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * adminUserPageSize

	search := strings.TrimSpace(c.Query("search"))
	if search != "" {
		users, err := repos.User.Search(search)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to search users")
		}
		return c.JSON(fiber.Map{"users": users, "search": search})
	}

	users, err := repos.User.GetWithPlan(offset, adminUserPageSize)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load users")
	}

	total, err := repos.User.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count users")
	}
	admins, err := repos.User.CountByRole(models.ROLE_ADMIN)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count users")
	}
	clients, err := repos.User.CountByRole(models.ROLE_CLIENT)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count users")
	}
	active, err := repos.User.CountByStatus(models.STATUS_ACTIVE)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count users")
	}
	disabled, err := repos.User.CountByStatus(models.STATUS_DISABLED)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count users")
	}

	entries := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		entries = append(entries, fiber.Map{
			"user":      u.User,
			"plan_name": u.PlanName,
			"plan_tier": u.PlanTier,
		})
	}

	return c.JSON(fiber.Map{
		"users": entries,
		"page":  page,
		"counts": fiber.Map{
			"total":    total,
			"admins":   admins,
			"clients":  clients,
			"active":   active,
			"disabled": disabled,
		},
	})
}

// HandleAdminUserToggleStatus flips a user between active and disabled.
func HandleAdminUserToggleStatus(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid user id")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	user.ToggleStatus()
	if err := repos.User.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update user")
	}

	return c.JSON(fiber.Map{"id": user.ID, "status": user.Status})
}

// HandleAdminUserChangeType sets a user's role to admin or client.
func HandleAdminUserChangeType(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid user id")
	}

	form := struct {
		Role string `form:"role" json:"role"`
	}{}
	if err := c.BodyParser(&form); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Could not parse request body")
	}

	role := strings.TrimSpace(form.Role)
	if role != models.ROLE_ADMIN && role != models.ROLE_CLIENT {
		return jsonError(c, fiber.StatusBadRequest, "invalid_role", "Role must be admin or client")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	user.Role = role
	if err := repos.User.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update user")
	}

	return c.JSON(fiber.Map{"id": user.ID, "role": user.Role})
}

// HandleAdminMigrateToPaidPage lists the active paid plans a user can be
// moved to, next to the subscription they currently hold.
func HandleAdminMigrateToPaidPage(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid user id")
	}

	user, err := repository.GetGlobalRepositories().User.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	svc := subscriptions.NewServiceFromDB(database.GetDB())
	current, err := svc.CurrentSubscription(c.Context(), userID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load subscription")
	}

	var excludePlanID uint
	if current != nil {
		excludePlanID = current.PlanID
	}
	plans, err := svc.AvailablePlans(c.Context(), excludePlanID, true)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load plans")
	}

	return c.JSON(fiber.Map{
		"user":                 user,
		"current_subscription": current,
		"plans":                plans,
	})
}

// HandleAdminMigrateToPaid moves a user onto the paid plan named in the
// request body.
func HandleAdminMigrateToPaid(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid user id")
	}

	form := struct {
		PlanID uint `form:"plan_id" json:"plan_id"`
	}{}
	if err := c.BodyParser(&form); err != nil || form.PlanID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid_plan_id", "A plan_id is required")
	}

	if err := ensureUserExists(userID); err != nil {
		return migrationErrorResponse(c, err)
	}

	svc := subscriptions.NewServiceFromDB(database.GetDB())
	result, err := svc.Migrate(c.Context(), userID, form.PlanID)
	if err != nil {
		return migrationErrorResponse(c, err)
	}

	return c.JSON(migrationResultJSON(result))
}

// HandleAdminMigrateToFreePage shows the user's current subscription ahead
// of a downgrade to the free plan.
func HandleAdminMigrateToFreePage(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid user id")
	}

	user, err := repository.GetGlobalRepositories().User.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	svc := subscriptions.NewServiceFromDB(database.GetDB())
	current, err := svc.CurrentSubscription(c.Context(), userID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load subscription")
	}

	return c.JSON(fiber.Map{
		"user":                 user,
		"current_subscription": current,
	})
}

// HandleAdminMigrateToFree moves a user back onto the canonical free plan.
func HandleAdminMigrateToFree(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid user id")
	}

	if err := ensureUserExists(userID); err != nil {
		return migrationErrorResponse(c, err)
	}

	svc := subscriptions.NewServiceFromDB(database.GetDB())
	result, err := svc.MigrateToFree(c.Context(), userID)
	if err != nil {
		return migrationErrorResponse(c, err)
	}

	return c.JSON(migrationResultJSON(result))
}

// HandleAdminRenewSubscription extends a user's paid subscription for
// another billing period, reactivating it when it lapsed.
func HandleAdminRenewSubscription(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid user id")
	}

	if err := ensureUserExists(userID); err != nil {
		return migrationErrorResponse(c, err)
	}

	svc := subscriptions.NewServiceFromDB(database.GetDB())
	result, err := svc.Renew(c.Context(), userID)
	if err != nil {
		return migrationErrorResponse(c, err)
	}

	return c.JSON(migrationResultJSON(result))
}

// HandleAdminExpireSubscriptions sweeps active subscriptions past their
// end date to status expired. Meant to be triggered by an external cron.
func HandleAdminExpireSubscriptions(c *fiber.Ctx) error {
	svc := subscriptions.NewServiceFromDB(database.GetDB())
	count, err := svc.ExpireOverdue(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to expire subscriptions")
	}

	return c.JSON(fiber.Map{"expired": count})
}

func ensureUserExists(userID uint) error {
	_, err := repository.GetGlobalRepositories().User.GetByID(userID)
	return err
}

func migrationResultJSON(result *subscriptions.MigrationResult) fiber.Map {
	out := fiber.Map{
		"action": result.Action,
		"subscription": fiber.Map{
			"uuid":       result.Subscription.UUID,
			"status":     result.Subscription.Status,
			"start_date": result.Subscription.StartDate,
			"end_date":   result.Subscription.EndDate,
		},
		"to_plan": result.ToPlan.Slug,
	}
	if result.FromPlan != nil {
		out["from_plan"] = result.FromPlan.Slug
	}
	return out
}
