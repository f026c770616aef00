package verification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/verification-api/internal/domain"
	"github.com/verification-api/internal/pkg/validate"
)

// SendEmailRequest asks for a code to be issued and mailed to Email. A
// non-empty Code is stored verbatim instead of a generated one (test tooling
// and support overrides).
type SendEmailRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code"`
}

// VerifyEmailRequest checks Code against the record issued for Email.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// SendSMSRequest asks for a code to be issued and texted to Phone.
type SendSMSRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code"`
}

// VerifySMSRequest checks Code against the record issued for Phone.
type VerifySMSRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type Service interface {
	SendEmailVerification(ctx context.Context, req SendEmailRequest) error
	VerifyEmailCode(ctx context.Context, req VerifyEmailRequest) error
	SendSMSVerification(ctx context.Context, req SendSMSRequest) error
	VerifySMSCode(ctx context.Context, req VerifySMSRequest) error
}

type codeStore interface {
	Issue(ctx context.Context, identifier, suppliedCode string) (domain.VerificationRecord, error)
	Verify(ctx context.Context, identifier, submittedCode string) domain.VerifyStatus
}

type mailer interface {
	SendVerificationCode(ctx context.Context, to, code, idempotencyKey string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	store         codeStore
	mailer        mailer
	smsSender     smsSender
	missingConfig []string
	ttl           time.Duration
}

type ServiceDeps struct {
	Store     codeStore
	Mailer    mailer
	SMSSender smsSender
	// MissingConfig lists required environment keys absent at boot. A
	// non-empty list fails every operation before it reaches the store.
	MissingConfig []string
	TTL           time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:         deps.Store,
		mailer:        deps.Mailer,
		smsSender:     deps.SMSSender,
		missingConfig: deps.MissingConfig,
		ttl:           deps.TTL,
	}
}

func (s *service) SendEmailVerification(ctx context.Context, req SendEmailRequest) error {
	if err := s.configReady(); err != nil {
		return err
	}
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}

	rec, err := s.store.Issue(ctx, req.Email, req.Code)
	if err != nil {
		return err
	}
	slog.Info("verification code issued", "record_id", rec.RecordID, "channel", "email")

	// Store first, send second: a delivery failure leaves the code issued,
	// so verifying it stays possible even when the mail never arrived.
	if err := s.mailer.SendVerificationCode(ctx, req.Email, rec.Code, "email-verify:"+rec.RecordID); err != nil {
		slog.Warn("verification mail not delivered", "record_id", rec.RecordID, "err", err)
		return fmt.Errorf("%v: %w", err, domain.ErrDelivery)
	}
	return nil
}

func (s *service) VerifyEmailCode(ctx context.Context, req VerifyEmailRequest) error {
	if err := s.configReady(); err != nil {
		return err
	}
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	return s.checkCode(ctx, req.Email, req.Code)
}

func (s *service) SendSMSVerification(ctx context.Context, req SendSMSRequest) error {
	if err := s.smsReady(); err != nil {
		return err
	}
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}

	rec, err := s.store.Issue(ctx, req.Phone, req.Code)
	if err != nil {
		return err
	}
	slog.Info("verification code issued", "record_id", rec.RecordID, "channel", "sms")

	text := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", rec.Code, int(s.ttl.Minutes()))
	if err := s.smsSender.SendSMS(ctx, req.Phone, text); err != nil {
		slog.Warn("verification SMS not delivered", "record_id", rec.RecordID, "err", err)
		return fmt.Errorf("%v: %w", err, domain.ErrDelivery)
	}
	return nil
}

func (s *service) VerifySMSCode(ctx context.Context, req VerifySMSRequest) error {
	if err := s.configReady(); err != nil {
		return err
	}
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	return s.checkCode(ctx, req.Phone, req.Code)
}

// configReady gates every operation on the required environment keys.
func (s *service) configReady() error {
	if len(s.missingConfig) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrConfiguration, strings.Join(s.missingConfig, ", "))
	}
	return nil
}

// smsReady additionally requires a constructed SMS sender.
func (s *service) smsReady() error {
	if err := s.configReady(); err != nil {
		return err
	}
	if s.smsSender == nil {
		return fmt.Errorf("%w: SMS sender unavailable", domain.ErrConfiguration)
	}
	return nil
}

// checkCode translates store outcomes into the domain error taxonomy.
func (s *service) checkCode(ctx context.Context, identifier, code string) error {
	switch status := s.store.Verify(ctx, identifier, code); status {
	case domain.VerifySuccess:
		return nil
	case domain.VerifyNotFound:
		return domain.ErrCodeNotFound
	case domain.VerifyExpired:
		return domain.ErrCodeExpired
	case domain.VerifyMismatch:
		return domain.ErrCodeMismatch
	default:
		return fmt.Errorf("unexpected verify status %q", status)
	}
}
