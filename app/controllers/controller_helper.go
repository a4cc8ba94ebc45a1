package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/internal/pkg/subscriptions"
)

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func jsonError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// migrationErrorResponse maps subscription service errors onto the API
// error shape. Unknown errors stay opaque.
func migrationErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, subscriptions.ErrPlanNotFound):
		return jsonError(c, fiber.StatusNotFound, "plan_not_found", "Plan not found")
	case errors.Is(err, subscriptions.ErrPlanInactive):
		return jsonError(c, fiber.StatusBadRequest, "plan_inactive", "Plan is not available")
	case errors.Is(err, subscriptions.ErrSamePlan):
		return jsonError(c, fiber.StatusConflict, "same_plan", "User already subscribed to this plan")
	case errors.Is(err, subscriptions.ErrNoSubscription):
		return jsonError(c, fiber.StatusNotFound, "no_subscription", "No subscription to renew")
	case errors.Is(err, subscriptions.ErrFreePlanRenewal):
		return jsonError(c, fiber.StatusBadRequest, "free_plan", "Free plan cannot be renewed")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return jsonError(c, fiber.StatusNotFound, "not_found", "Record not found")
	default:
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Something went wrong")
	}
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
