package mail

import (
	"context"
	"log/slog"

	"github.com/verification-api/internal/config"
)

// Mailer delivers a verification code to a recipient. Implementations are
// synchronous: a nil return means the transport accepted the message.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code, idempotencyKey string) error
}

// Provider names accepted in MAIL_PROVIDER.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderNoop   = "noop"
)

// NewMailer selects the Mailer implementation for cfg.MailProvider.
// Construction never fails: missing credentials surface per request through
// the configuration gate, not as a boot failure. Unknown provider names fall
// back to SMTP.
func NewMailer(cfg *config.Config) Mailer {
	switch cfg.MailProvider {
	case ProviderResend:
		return NewResendMailer(cfg.APIKey, cfg.SMTPFrom, cfg.VerificationTTL)
	case ProviderNoop:
		return &NoopMailer{}
	case ProviderSMTP:
		return NewSMTPMailer(cfg)
	default:
		return NewSMTPMailer(cfg)
	}
}

// NoopMailer logs instead of sending. Used in local development.
type NoopMailer struct{}

func (m *NoopMailer) SendVerificationCode(ctx context.Context, to, code, idempotencyKey string) error {
	slog.Info("noop mailer: skipping delivery", "to", to, "idempotency_key", idempotencyKey)
	return nil
}
