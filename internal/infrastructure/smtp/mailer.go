package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/wani-app/api/internal/config"
)

// Mailer sends transactional email. Sending failures are reported to the
// caller but are never fatal to the operation that triggered the send.
type Mailer interface {
	SendVerificationEmail(to, name, token string) error
	SendPasswordResetEmail(to, name, token string) error
}

type mailer struct {
	host        string
	port        string
	from        string
	fromName    string
	username    string
	password    string
	frontendURL string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		from:        cfg.SMTPFrom,
		fromName:    cfg.SMTPFromName,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		frontendURL: cfg.FrontendURL,
	}
}

func (m *mailer) SendVerificationEmail(to, name, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, token)
	subject := fmt.Sprintf("Welcome to %s! Verify your email", m.fromName)
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>Welcome, %s!</h2>
<p>Thank you for signing up with %s. Please verify your email address:</p>
<p><a href="%s" style="display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 4px;">Verify Email Address</a></p>
<p>Or copy this link into your browser:<br>%s</p>
<p>This link will expire in 24 hours.</p>
<p>If you didn't create an account with %s, you can safely ignore this email.</p>
</body></html>`, name, m.fromName, link, link, m.fromName)
	return m.send(to, subject, body)
}

func (m *mailer) SendPasswordResetEmail(to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	subject := "Reset Your Password"
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>Password Reset Request</h2>
<p>Hi %s,</p>
<p>We received a request to reset your password. Click the button below to reset it:</p>
<p><a href="%s" style="display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 4px;">Reset Password</a></p>
<p>This link will expire in 1 hour.</p>
<p>If you didn't request this, please ignore this email.</p>
</body></html>`, name, link)
	return m.send(to, subject, body)
}

func (m *mailer) send(to, subject, htmlBody string) error {
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.fromName, m.from, to, subject, htmlBody)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
