// Package otp generates the short numeric codes sent to users.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generator produces one verification code per call. The store takes a
// Generator at construction so tests can substitute a deterministic one.
type Generator func() (string, error)

// codeSpan is the size of the six-digit space [100000, 999999].
const (
	codeMin  = 100000
	codeSpan = 900000
)

// SixDigits draws a code uniformly at random from [100000, 999999].
func SixDigits() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Fixed returns a Generator that always yields code.
func Fixed(code string) Generator {
	return func() (string, error) { return code, nil }
}
