package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendAttempts bounds retries on rate limits and transient network errors.
const resendAttempts = 3

// ResendMailer sends mail through the Resend REST API.
type ResendMailer struct {
	from   string
	ttl    time.Duration
	client *resend.Client
}

func NewResendMailer(apiKey, from string, ttl time.Duration) *ResendMailer {
	return &ResendMailer{
		from:   from,
		ttl:    ttl,
		client: resend.NewClient(apiKey),
	}
}

func (m *ResendMailer) SendVerificationCode(ctx context.Context, to, code, idempotencyKey string) error {
	text, html := verificationBodies(code, m.ttl)
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Your verification code",
		Text:    text,
		Html:    html,
	}

	options := &resend.SendEmailOptions{}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		options.IdempotencyKey = key
	}

	var lastErr error
	for attempt := 0; attempt < resendAttempts; attempt++ {
		_, err := m.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		wait, retryable := retryDelay(err, attempt)
		if !retryable {
			return fmt.Errorf("resend send failed: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

// retryDelay decides whether err is worth retrying and how long to back off.
// Rate-limit responses honour the server's Retry-After (capped at 30s);
// transient network errors back off linearly.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
