package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verification-api/internal/config"
)

// --- factory ---

func TestNewMailer_SelectsConfiguredProvider(t *testing.T) {
	_, ok := NewMailer(&config.Config{MailProvider: ProviderResend}).(*ResendMailer)
	assert.True(t, ok)

	_, ok = NewMailer(&config.Config{MailProvider: ProviderNoop}).(*NoopMailer)
	assert.True(t, ok)

	_, ok = NewMailer(&config.Config{MailProvider: ProviderSMTP, SMTPPort: "587"}).(*SMTPMailer)
	assert.True(t, ok)
}

func TestNewMailer_UnknownProviderFallsBackToSMTP(t *testing.T) {
	_, ok := NewMailer(&config.Config{MailProvider: "carrier-pigeon"}).(*SMTPMailer)
	assert.True(t, ok)
}

func TestNoopMailer_NeverFails(t *testing.T) {
	m := &NoopMailer{}
	require.NoError(t, m.SendVerificationCode(context.Background(), "a@b.com", "424242", "email-verify:x"))
}

// --- message bodies ---

func TestVerificationBodies_EmbedCodeAndTTL(t *testing.T) {
	text, html := verificationBodies("424242", 10*time.Minute)
	assert.Contains(t, text, "424242")
	assert.Contains(t, text, "10 minutes")
	assert.Contains(t, html, "<strong>424242</strong>")
	assert.Contains(t, html, "10 minutes")
}

// --- retry classification ---

func TestRetryDelay_RateLimitHonoursRetryAfter(t *testing.T) {
	err := &resend.RateLimitError{RetryAfter: "2"}
	wait, retryable := retryDelay(err, 0)
	assert.True(t, retryable)
	assert.Equal(t, 2*time.Second, wait)
}

func TestRetryDelay_RateLimitCapsRetryAfter(t *testing.T) {
	err := &resend.RateLimitError{RetryAfter: "120"}
	wait, retryable := retryDelay(err, 0)
	assert.True(t, retryable)
	assert.Equal(t, 30*time.Second, wait)
}

func TestRetryDelay_RateLimitWithoutHeaderBacksOffLinearly(t *testing.T) {
	err := &resend.RateLimitError{}
	wait, retryable := retryDelay(err, 1)
	assert.True(t, retryable)
	assert.Equal(t, 2*time.Second, wait)
}

func TestRetryDelay_TimeoutMessageIsRetryable(t *testing.T) {
	wait, retryable := retryDelay(errors.New("connection timeout"), 0)
	assert.True(t, retryable)
	assert.Equal(t, 500*time.Millisecond, wait)
}

func TestRetryDelay_PermanentErrorIsNotRetryable(t *testing.T) {
	_, retryable := retryDelay(errors.New("invalid from address"), 0)
	assert.False(t, retryable)
}
