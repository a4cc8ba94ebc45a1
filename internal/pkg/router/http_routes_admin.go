package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PlanFox/app/controllers"
	"github.com/ManuelReschke/PlanFox/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	// User management
	adminGroup := app.Group("/auth/users", middleware.RequireAPIAdmin)
	adminGroup.Get("/", controllers.HandleAdminUserList)
	adminGroup.Post("/:id/toggle-status", controllers.HandleAdminUserToggleStatus)
	adminGroup.Post("/:id/change-type", controllers.HandleAdminUserChangeType)
	adminGroup.Get("/:id/migrate-to-paid", controllers.HandleAdminMigrateToPaidPage)
	adminGroup.Post("/:id/migrate-to-paid", controllers.HandleAdminMigrateToPaid)
	adminGroup.Get("/:id/migrate-to-free", controllers.HandleAdminMigrateToFreePage)
	adminGroup.Post("/:id/migrate-to-free", controllers.HandleAdminMigrateToFree)
	adminGroup.Post("/:id/renew", controllers.HandleAdminRenewSubscription)

	// Subscription maintenance
	app.Post("/auth/admin/subscriptions/expire", middleware.RequireAPIAdmin, controllers.HandleAdminExpireSubscriptions)
}
