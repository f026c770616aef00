package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verification-api/internal/config"
	"github.com/verification-api/internal/infrastructure/mail"
	"github.com/verification-api/internal/infrastructure/memstore"
	"github.com/verification-api/internal/transport/http/handler"
)

// --- helpers ---

type fakeSMS struct{}

func (fakeSMS) SendSMS(ctx context.Context, to, message string) error { return nil }

func newTestRouter(missing []string) http.Handler {
	cfg := &config.Config{
		AllowedOrigins:  []string{"*"},
		VerificationTTL: 10 * time.Minute,
	}
	deps := &Deps{
		Store:         memstore.New(cfg.VerificationTTL, nil),
		Mailer:        &mail.NoopMailer{},
		SMSSender:     fakeSMS{},
		MissingConfig: missing,
	}
	return NewRouter(cfg, deps)
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)
	return rr
}

func envelope(t *testing.T, rr *httptest.ResponseRecorder) handler.ResultEnvelope {
	t.Helper()
	var resp handler.ResultEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

// --- tests ---

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(nil)

	rr := do(router, http.MethodGet, "/v1/health-check/ping", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := envelope(t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, "pong", resp.Message)
}

func TestRouter_UnknownPath(t *testing.T) {
	router := newTestRouter(nil)
	rr := do(router, http.MethodGet, "/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_EmailVerificationFlow(t *testing.T) {
	router := newTestRouter(nil)

	// Issue with an explicit code.
	rr := do(router, http.MethodPost, "/v1/verifications/send-email-verification",
		`{"email":"a@b.com","code":"424242"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := envelope(t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, "verification email sent", resp.Message)

	// First verify consumes the code.
	rr = do(router, http.MethodPost, "/v1/verifications/verify-email-code",
		`{"email":"a@b.com","code":"424242"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	resp = envelope(t, rr)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Verified)
	assert.True(t, *resp.Verified)

	// Second verify finds nothing.
	rr = do(router, http.MethodPost, "/v1/verifications/verify-email-code",
		`{"email":"a@b.com","code":"424242"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	resp = envelope(t, rr)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Verified)
	assert.False(t, *resp.Verified)
	assert.Equal(t, "No verification code found. Please request a new one.", resp.Message)
}

func TestRouter_SMSVerificationFlow(t *testing.T) {
	router := newTestRouter(nil)

	rr := do(router, http.MethodPost, "/v1/verifications/send-sms-verification",
		`{"phone":"+15550100","code":"113355"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "verification SMS sent", envelope(t, rr).Message)

	// A wrong code keeps the record alive.
	rr = do(router, http.MethodPost, "/v1/verifications/verify-sms-code",
		`{"phone":"+15550100","code":"999999"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	resp := envelope(t, rr)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid verification code.", resp.Message)

	rr = do(router, http.MethodPost, "/v1/verifications/verify-sms-code",
		`{"phone":"+15550100","code":"113355"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	resp = envelope(t, rr)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Verified)
	assert.True(t, *resp.Verified)
	assert.Equal(t, "phone verified", resp.Message)
}

func TestRouter_UnknownOperation(t *testing.T) {
	router := newTestRouter(nil)

	rr := do(router, http.MethodPost, "/v1/verifications/make-coffee", `{}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, envelope(t, rr).Message, "unknown operation")
}

func TestRouter_MissingConfigGatesOperations(t *testing.T) {
	router := newTestRouter([]string{"SMTP_HOST", "API_KEY"})

	rr := do(router, http.MethodPost, "/v1/verifications/send-email-verification",
		`{"email":"a@b.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "missing configuration: SMTP_HOST, API_KEY", envelope(t, rr).Message)
}
