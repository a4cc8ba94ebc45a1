package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/PlanFox/app/models"
	"github.com/ManuelReschke/PlanFox/app/repository"
	"github.com/ManuelReschke/PlanFox/internal/pkg/constants"
	"github.com/ManuelReschke/PlanFox/internal/pkg/mail"
)

// resetRequestedMessage is shown for every outcome of a reset request so
// the endpoint leaks nothing about which emails have accounts.
const resetRequestedMessage = "If an account exists for this address, a reset link has been sent."

// HandlePasswordResetPage is the redirect target for reset flashes.
func HandlePasswordResetPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flash": flash.Get(c)})
}

// HandlePasswordResetConfirmPage reports whether the link's token is still
// redeemable so a client can show the form or the generic error.
func HandlePasswordResetConfirmPage(c *fiber.Ctx) error {
	_, err := repository.GetGlobalRepositories().ResetToken.Get(c.Params("token"))

	return c.JSON(fiber.Map{
		"valid": err == nil,
		"flash": flash.Get(c),
	})
}

// HandlePasswordResetRequest issues a fresh reset token and mails the
// confirmation link. The response is identical whether or not the email
// belongs to an account.
func HandlePasswordResetRequest(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))

	fm := fiber.Map{
		"type":    "success",
		"message": resetRequestedMessage,
	}

	if email == "" {
		return flash.WithSuccess(c, fm).Redirect(constants.RouteLogin)
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByEmail(email)
	if err != nil || !user.IsActive() {
		return flash.WithSuccess(c, fm).Redirect(constants.RouteLogin)
	}

	token, err := repos.ResetToken.Issue(user.ID)
	if err != nil {
		log.Printf("failed to issue reset token for user %d: %v", user.ID, err)
		return flash.WithSuccess(c, fm).Redirect(constants.RouteLogin)
	}

	// fire-and-forget: delivery failures are logged by the mailer and
	// never surfaced to the requester
	go func(to, tokenValue string) {
		_ = mail.SendPasswordResetMail(to, tokenValue)
	}(user.Email, token.Token)

	return flash.WithSuccess(c, fm).Redirect(constants.RouteLogin)
}

// HandlePasswordResetConfirm redeems the token from the URL and sets the
// new password. Absent, used and expired tokens all get the same generic
// rejection.
func HandlePasswordResetConfirm(c *fiber.Ctx) error {
	tokenValue := c.Params("token")
	password := c.FormValue("password")

	if !models.ValidPassword(password) {
		fm := fiber.Map{
			"type":    "error",
			"message": "Password must be at least 8 characters long",
		}

		return flash.WithError(c, fm).Redirect(constants.RoutePasswordResetConfirm + "/" + tokenValue)
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Something went wrong, please try again",
		}

		return flash.WithError(c, fm).Redirect(constants.RoutePasswordResetConfirm + "/" + tokenValue)
	}

	err = repository.GetGlobalRepositories().ResetToken.Consume(tokenValue, hash)
	if err != nil {
		fm := fiber.Map{
			"type": "error",
		}
		if errors.Is(err, models.ErrInvalidToken) {
			fm["message"] = "This reset link is invalid or has expired"
		} else {
			fm["message"] = "Something went wrong, please try again"
		}

		return flash.WithError(c, fm).Redirect(constants.RoutePasswordReset)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Password updated. You can log in now.",
	}

	return flash.WithSuccess(c, fm).Redirect(constants.RouteLogin)
}
