package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/PlanFox/internal/pkg/constants"
	"github.com/ManuelReschke/PlanFox/internal/pkg/usercontext"
)

func contextApp(ctx usercontext.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(usercontext.KeyUserContext, ctx)
		return c.Next()
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name         string
		ctx          usercontext.UserContext
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "anonymous is redirected to login",
			ctx:          usercontext.UserContext{},
			wantStatus:   fiber.StatusSeeOther,
			wantLocation: constants.RouteLogin,
		},
		{
			name:       "logged in passes",
			ctx:        usercontext.UserContext{UserID: 1, IsLoggedIn: true},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := contextApp(tt.ctx)
			app.Get("/protected", RequireAuth, func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name         string
		ctx          usercontext.UserContext
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "anonymous goes to login",
			ctx:          usercontext.UserContext{},
			wantStatus:   fiber.StatusSeeOther,
			wantLocation: constants.RouteLogin,
		},
		{
			name:         "client goes home",
			ctx:          usercontext.UserContext{UserID: 2, IsLoggedIn: true},
			wantStatus:   fiber.StatusSeeOther,
			wantLocation: constants.RouteHome,
		},
		{
			name:       "admin passes",
			ctx:        usercontext.UserContext{UserID: 1, IsLoggedIn: true, IsAdmin: true},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := contextApp(tt.ctx)
			app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
			}
		})
	}
}

func TestRequireAPISessionAuth(t *testing.T) {
	app := contextApp(usercontext.UserContext{})
	app.Get("/api", RequireAPISessionAuth, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAPIAdmin(t *testing.T) {
	tests := []struct {
		name       string
		ctx        usercontext.UserContext
		wantStatus int
	}{
		{name: "anonymous gets 401", ctx: usercontext.UserContext{}, wantStatus: fiber.StatusUnauthorized},
		{name: "client gets 403", ctx: usercontext.UserContext{UserID: 2, IsLoggedIn: true}, wantStatus: fiber.StatusForbidden},
		{name: "admin passes", ctx: usercontext.UserContext{UserID: 1, IsLoggedIn: true, IsAdmin: true}, wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := contextApp(tt.ctx)
			app.Get("/api/admin", RequireAPIAdmin, func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/admin", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
