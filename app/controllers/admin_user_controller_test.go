package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/PlanFox/app/models"
	"github.com/ManuelReschke/PlanFox/internal/pkg/subscriptions"
)

func TestHandleAdminUserToggleStatus_InvalidID(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/users/:id/toggle-status", HandleAdminUserToggleStatus)

	req := httptest.NewRequest(fiber.MethodPost, "/auth/users/abc/toggle-status", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleAdminUserChangeType_InvalidRole(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/users/:id/change-type", HandleAdminUserChangeType)

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown role", body: "role=superuser"},
		{name: "empty role", body: "role="},
		{name: "no body", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/auth/users/1/change-type", strings.NewReader(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHandleAdminMigrateToPaid_MissingPlanID(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/users/:id/migrate-to-paid", HandleAdminMigrateToPaid)

	req := httptest.NewRequest(fiber.MethodPost, "/auth/users/1/migrate-to-paid", strings.NewReader("plan_id=0"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleAdminUserListCounts(t *testing.T) {
	db := setupTestDB(t)
	seedAccount(t, db, "admin@example.com", models.ROLE_ADMIN, models.STATUS_ACTIVE)
	seedAccount(t, db, "client1@example.com", models.ROLE_CLIENT, models.STATUS_ACTIVE)
	seedAccount(t, db, "client2@example.com", models.ROLE_CLIENT, models.STATUS_DISABLED)

	app := fiber.New()
	app.Get("/auth/users", HandleAdminUserList)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/auth/users", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Users  []json.RawMessage `json:"users"`
		Counts struct {
			Total    int64 `json:"total"`
			Admins   int64 `json:"admins"`
			Clients  int64 `json:"clients"`
			Active   int64 `json:"active"`
			Disabled int64 `json:"disabled"`
		} `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))

	assert.Len(t, payload.Users, 3)
	assert.Equal(t, int64(3), payload.Counts.Total)
	assert.Equal(t, int64(1), payload.Counts.Admins)
	assert.Equal(t, int64(2), payload.Counts.Clients)
	assert.Equal(t, int64(2), payload.Counts.Active)
	assert.Equal(t, int64(1), payload.Counts.Disabled)
}

func TestHandleAdminRenewSubscription(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "renew@example.com", models.ROLE_CLIENT, models.STATUS_ACTIVE)

	plan := &models.Plan{Name: "Premium", Slug: "premium", Tier: models.TierPremium, BillingCycle: models.BillingCycleMonthly, IsActive: true}
	require.NoError(t, db.Create(plan).Error)
	_, err := subscriptions.NewServiceFromDB(db).Migrate(context.Background(), user.ID, plan.ID)
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/auth/users/:id/renew", HandleAdminRenewSubscription)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, fmt.Sprintf("/auth/users/%d/renew", user.ID), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Action string `json:"action"`
		ToPlan string `json:"to_plan"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, models.HistoryActionRenewed, payload.Action)
	assert.Equal(t, "premium", payload.ToPlan)

	var history []models.SubscriptionHistory
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id DESC").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, models.HistoryActionRenewed, history[0].Action)
}

func TestHandleAdminRenewSubscription_NoSubscription(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "nosub@example.com", models.ROLE_CLIENT, models.STATUS_ACTIVE)

	app := fiber.New()
	app.Post("/auth/users/:id/renew", HandleAdminRenewSubscription)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, fmt.Sprintf("/auth/users/%d/renew", user.ID), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMigrationResultJSON(t *testing.T) {
	end := time.Now().AddDate(0, 0, 30)
	from := &models.Plan{ID: 1, Slug: "free", Tier: models.TierFree}
	to := &models.Plan{ID: 2, Slug: "premium", Tier: models.TierPremium}
	result := &subscriptions.MigrationResult{
		Subscription: &models.Subscription{
			UUID:      "9e2c3f6a-0000-0000-0000-000000000000",
			Status:    models.SubscriptionStatusActive,
			StartDate: time.Now(),
			EndDate:   &end,
		},
		Action:   models.HistoryActionUpgraded,
		FromPlan: from,
		ToPlan:   to,
	}

	out := migrationResultJSON(result)
	assert.Equal(t, models.HistoryActionUpgraded, out["action"])
	assert.Equal(t, "free", out["from_plan"])
	assert.Equal(t, "premium", out["to_plan"])

	sub, ok := out["subscription"].(fiber.Map)
	require.True(t, ok)
	assert.Equal(t, "9e2c3f6a-0000-0000-0000-000000000000", sub["uuid"])
	assert.Equal(t, models.SubscriptionStatusActive, sub["status"])
}

func TestMigrationResultJSON_NoPriorPlan(t *testing.T) {
	result := &subscriptions.MigrationResult{
		Subscription: &models.Subscription{UUID: "u", Status: models.SubscriptionStatusActive, StartDate: time.Now()},
		Action:       models.HistoryActionCreated,
		ToPlan:       &models.Plan{ID: 1, Slug: "free", Tier: models.TierFree},
	}

	out := migrationResultJSON(result)
	assert.Equal(t, models.HistoryActionCreated, out["action"])
	_, hasFrom := out["from_plan"]
	assert.False(t, hasFrom)
}
