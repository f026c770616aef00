package mail

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/verification-api/internal/config"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	ttl    time.Duration
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	port, _ := strconv.Atoi(cfg.SMTPPort)
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
		ttl:    cfg.VerificationTTL,
	}
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, code, idempotencyKey string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your verification code")

	text, html := verificationBodies(code, m.ttl)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// verificationBodies renders the plain-text and HTML variants shared by the
// SMTP and Resend transports.
func verificationBodies(code string, ttl time.Duration) (text, html string) {
	minutes := int(ttl.Minutes())
	text = fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, minutes)
	html = fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>", code, minutes)
	return text, html
}
