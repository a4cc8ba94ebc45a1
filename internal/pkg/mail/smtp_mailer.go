package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/ManuelReschke/PlanFox/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP.
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendPasswordResetMail mails the reset confirmation link. Callers fire
// this from a goroutine; a failure is logged by SendMail and must never
// reach the requester (anti-enumeration).
func SendPasswordResetMail(to string, token string) error {
	baseURL := env.GetEnv("APP_URL", "http://localhost:4000")
	link := fmt.Sprintf("%s/auth/password-reset-confirm/%s", baseURL, token)

	body := fmt.Sprintf(
		"<p>A password reset was requested for your account.</p>"+
			"<p><a href=\"%s\">Reset your password</a></p>"+
			"<p>The link is valid for 24 hours and can be used once. "+
			"If you did not request a reset, you can ignore this email.</p>",
		link,
	)

	return SendMail(to, "Reset your password", body)
}
