package domain

import "time"

// VerificationRecord is a one-time code issued for an identifier (an email
// address or a phone number). Records are immutable once issued: re-issuing
// for the same identifier replaces the record wholesale.
type VerificationRecord struct {
	// RecordID correlates log lines and delivery idempotency keys. It plays
	// no part in code matching.
	RecordID   string    `json:"record_id"`
	Identifier string    `json:"identifier"`
	Code       string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its TTL at the given instant.
func (r VerificationRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// VerifyStatus is the outcome of checking a submitted code against the store.
type VerifyStatus string

const (
	// VerifySuccess: the code matched and the record was consumed.
	VerifySuccess VerifyStatus = "success"
	// VerifyNotFound: no record exists for the identifier.
	VerifyNotFound VerifyStatus = "not_found"
	// VerifyExpired: a record existed but its TTL had passed; it was removed.
	VerifyExpired VerifyStatus = "expired"
	// VerifyMismatch: the record is live but the code differs; the record is
	// kept so the caller may retry until the TTL runs out.
	VerifyMismatch VerifyStatus = "mismatch"
)
