// Package mail delivers verification and password-reset email via SendGrid.
package mail

import (
	"fmt"
	"log/slog"

	"github.com/cradlelog/cradle-backend/internal/config"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends account-lifecycle email. Implementations must not block the
// caller on retries; a failed send is reported once and dropped.
type Mailer interface {
	SendVerification(toName, toEmail, token string) error
	SendPasswordReset(toName, toEmail, token string) error
}

type SendGridMailer struct {
	apiKey     string
	sender     string
	senderName string
	baseURL    string
}

func NewSendGridMailer(cfg *config.Config) *SendGridMailer {
	return &SendGridMailer{
		apiKey:     cfg.SendGridAPIKey,
		sender:     cfg.MailSender,
		senderName: cfg.MailSenderName,
		baseURL:    cfg.BaseURL,
	}
}

func (m *SendGridMailer) SendVerification(toName, toEmail, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify/%s", m.baseURL, token)
	subject := "Verify your email"
	plain := fmt.Sprintf("Hi %s,\n\nConfirm your email address by opening this link:\n%s\n\nThe link expires in 24 hours.", toName, link)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Confirm your email address by clicking <a href=%q>this link</a>. It expires in 24 hours.</p>", toName, link)
	return m.send(toName, toEmail, subject, plain, html)
}

func (m *SendGridMailer) SendPasswordReset(toName, toEmail, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token)
	subject := "Reset your password"
	plain := fmt.Sprintf("Hi %s,\n\nReset your password by opening this link:\n%s\n\nThe link expires in 1 hour. If you did not request this, ignore this message.", toName, link)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Reset your password by clicking <a href=%q>this link</a>. It expires in 1 hour.</p><p>If you did not request this, ignore this message.</p>", toName, link)
	return m.send(toName, toEmail, subject, plain, html)
}

func (m *SendGridMailer) send(toName, toEmail, subject, plain, html string) error {
	from := sgmail.NewEmail(m.senderName, m.sender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, plain, html)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	slog.Info("email dispatched", "to", toEmail, "subject", subject, "status", resp.StatusCode)
	return nil
}
