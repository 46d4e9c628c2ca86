package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/kulinarya/backend/pkg/config"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	host string
	port string
	from string
	auth smtp.Auth

	frontendURL string
}

func New(cfg *config.Config) *Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &Mailer{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		from:        cfg.MailFrom,
		auth:        auth,
		frontendURL: cfg.FrontendURL,
	}
}

// SendVerification sends the email-verification link for a new or
// re-requested registration.
func (m *Mailer) SendVerification(email, firstName, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWelcome to Kulinarya! Please verify your email address by opening the link below:\r\n\r\n%s\r\n\r\nIf you did not create this account, you can ignore this message.\r\n",
		firstName, link,
	)
	return m.send(email, "Verify your Kulinarya account", body)
}

// SendPasswordReset sends the password-reset link.
func (m *Mailer) SendPasswordReset(email, firstName, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nA password reset was requested for your account. Open the link below to choose a new password:\r\n\r\n%s\r\n\r\nIf you did not request this, you can ignore this message.\r\n",
		firstName, link,
	)
	return m.send(email, "Reset your Kulinarya password", body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := m.host + ":" + m.port
	return smtp.SendMail(addr, m.auth, m.from, []string{to}, []byte(msg))
}
