// Package mailer sends the transactional emails triggered by the auth flow.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"todo-backend/internal/config"
)

// Mailer is the outbound notification contract used by the auth service.
// Implementations must be safe for concurrent use.
type Mailer interface {
	SendWelcome(to, name string) error
	SendPasswordReset(to, resetToken string) error
	SendPasswordChanged(to, name string) error
}

// SMTPMailer delivers mail through a configured SMTP relay.
type SMTPMailer struct {
	dialer      *gomail.Dialer
	fromName    string
	fromAddress string
	frontendURL string
}

// NewSMTPMailer builds a mailer from the SMTP settings in cfg.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		fromName:    cfg.EmailFromName,
		fromAddress: cfg.EmailFromAddress,
		frontendURL: cfg.FrontendURL,
	}
}

func (m *SMTPMailer) send(to, subject, htmlBody, textBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddress, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendWelcome greets a freshly signed-up user.
func (m *SMTPMailer) SendWelcome(to, name string) error {
	html := fmt.Sprintf(`<div style="font-family: Arial; padding: 20px;">
<h2 style="color:#4F46E5;">Welcome to Todo App</h2>
<p>Hello %s, your account has been created successfully.</p>
<p>Start managing your tasks now.</p>
<a href="%s">Open App</a>
</div>`, name, m.frontendURL)
	text := fmt.Sprintf("Welcome to Todo App\nHello %s, your account has been created successfully.\nOpen App: %s\n", name, m.frontendURL)
	return m.send(to, "Welcome to Todo App", html, text)
}

// SendPasswordReset mails a link embedding the reset token.
func (m *SMTPMailer) SendPasswordReset(to, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, resetToken)
	html := fmt.Sprintf(`<div style="font-family: Arial; padding: 20px;">
<h2 style="color:#DC2626;">Reset Your Password</h2>
<p>Click the link below to reset your password.</p>
<a href="%s">Reset Password</a>
<p>If the link doesn't work, open this URL:</p>
<p>%s</p>
</div>`, resetURL, resetURL)
	text := fmt.Sprintf("Reset Your Password\nReset link: %s\n", resetURL)
	return m.send(to, "Reset Your Password", html, text)
}

// SendPasswordChanged confirms a completed password reset.
func (m *SMTPMailer) SendPasswordChanged(to, name string) error {
	html := fmt.Sprintf(`<div style="font-family: Arial; padding: 20px;">
<h2 style="color:#059669;">Password Updated</h2>
<p>Hello %s, your password has been changed successfully.</p>
<p>If you didn't make this change, please contact support immediately.</p>
</div>`, name)
	text := "Your password was updated successfully.\nIf this wasn't you, contact support immediately.\n"
	return m.send(to, "Your Password Was Updated", html, text)
}
