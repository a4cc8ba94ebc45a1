package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/app/models"
	"github.com/ManuelReschke/PlanFox/internal/pkg/constants"
	"github.com/ManuelReschke/PlanFox/internal/pkg/database"
	"github.com/ManuelReschke/PlanFox/internal/pkg/session"
	"github.com/ManuelReschke/PlanFox/internal/pkg/subscriptions"
	"github.com/ManuelReschke/PlanFox/internal/pkg/usercontext"
)

// HandleHome is the landing endpoint; it reports who is logged in and
// carries any flash message from a redirect.
func HandleHome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"app":   "PlanFox",
		"user":  usercontext.GetUserContext(c),
		"flash": flash.Get(c),
	})
}

// HandleRegisterPage is the redirect target for registration flashes.
func HandleRegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flash": flash.Get(c)})
}

// HandleLoginPage is the redirect target for login flashes.
func HandleLoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flash": flash.Get(c)})
}

// HandleAuthRegister creates the account, its empty profile and the opening
// free subscription in one transaction, then sends the user to the login
// page.
func HandleAuthRegister(c *fiber.Ctx) error {
	user, err := models.CreateUser(c.FormValue("name"), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("registration failed: %s", err),
		}

		return flash.WithError(c, fm).Redirect(constants.RouteRegister)
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserProfile{UserID: user.ID}).Error; err != nil {
			return err
		}

		_, err := subscriptions.NewServiceFromDB(tx).CreateInitial(c.Context(), user.ID)
		return err
	})
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect(constants.RouteRegister)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Account created! You can log in now.",
	}

	return flash.WithSuccess(c, fm).Redirect(constants.RouteLogin)
}

func HandleAuthLogin(c *fiber.Ctx) error {
	var user models.User
	fm := fiber.Map{
		"type": "error",
	}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	result := database.GetDB().Where("email = ?", c.FormValue("email")).First(&user)
	if result.Error != nil {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect(constants.RouteLogin)
	}

	if models.CheckPasswordHash(c.FormValue("password"), user.Password) == false {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect(constants.RouteLogin)
	}

	if !user.IsActive() {
		fm["message"] = "This account is disabled"

		return flash.WithError(c, fm).Redirect(constants.RouteLogin)
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(constants.RouteLogin)
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyIsAdmin, user.IsAdmin())

	err = sess.Save()
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(constants.RouteLogin)
	}

	database.GetDB().Model(&user).Update("last_login_at", time.Now())

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome back!",
	}

	return flash.WithSuccess(c, fm).Redirect(constants.RouteHome)
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect(constants.RouteLogin)
	}

	err = sess.Destroy()
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(constants.RouteLogin)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Bye bye! See you soon.",
	}

	c.Locals(usercontext.KeyFromProtected, false)

	return flash.WithSuccess(c, fm).Redirect(constants.RouteLogin)
}
