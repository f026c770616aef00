package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrConfiguration    = errors.New("missing configuration")
	ErrDelivery         = errors.New("delivery failed")
)

// Verification failures. Their text doubles as the response message, so it is
// written for the end user rather than for logs.
var (
	ErrCodeNotFound = errors.New("No verification code found. Please request a new one.")
	ErrCodeExpired  = errors.New("Verification code has expired. Please request a new one.")
	ErrCodeMismatch = errors.New("Invalid verification code.")
)
