package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PlanFox/app/controllers"
	"github.com/ManuelReschke/PlanFox/internal/pkg/constants"
	"github.com/ManuelReschke/PlanFox/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get(constants.RouteHome, controllers.HandleHome)

	// Account lifecycle
	app.Get(constants.RouteRegister, controllers.HandleRegisterPage)
	app.Post(constants.RouteRegister, controllers.HandleAuthRegister)
	app.Get(constants.RouteLogin, controllers.HandleLoginPage)
	app.Post(constants.RouteLogin, controllers.HandleAuthLogin)
	app.Post(constants.RouteLogout, middleware.RequireAuth, controllers.HandleAuthLogout)

	// Password reset (no session required, signature is the token itself)
	app.Get(constants.RoutePasswordReset, controllers.HandlePasswordResetPage)
	app.Post(constants.RoutePasswordReset, controllers.HandlePasswordResetRequest)
	app.Get(constants.RoutePasswordResetConfirm+"/:token", controllers.HandlePasswordResetConfirmPage)
	app.Post(constants.RoutePasswordResetConfirm+"/:token", controllers.HandlePasswordResetConfirm)

	// Own profile
	app.Get(constants.RouteProfile, middleware.RequireAuth, controllers.HandleProfile)
	app.Post(constants.RouteProfileEdit, middleware.RequireAuth, controllers.HandleProfileEdit)
}
