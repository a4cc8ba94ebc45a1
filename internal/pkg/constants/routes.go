package constants

// Static route constants
const (
	RouteHome     = "/"
	RouteRegister = "/auth/register"
	RouteLogin    = "/auth/login"
	RouteLogout   = "/auth/logout"

	RoutePasswordReset        = "/auth/password-reset"
	RoutePasswordResetConfirm = "/auth/password-reset-confirm"

	RouteProfile     = "/auth/profile"
	RouteProfileEdit = "/auth/profile/edit"

	RouteAdminUsers = "/auth/users"
	RouteUserInfo   = "/auth/api/user-info"
)
