package domain

import "fmt"

// Operation names one of the dispatchable verification actions. The route
// parameter is parsed into an Operation up front so that handlers switch
// exhaustively over known values instead of comparing raw strings.
type Operation string

const (
	OpSendEmailVerification Operation = "send-email-verification"
	OpVerifyEmailCode       Operation = "verify-email-code"
	OpSendSMSVerification   Operation = "send-sms-verification"
	OpVerifySMSCode         Operation = "verify-sms-code"
)

// ParseOperation maps a route action string to an Operation.
// Unknown values return an error wrapping ErrUnknownOperation.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OpSendEmailVerification, OpVerifyEmailCode, OpSendSMSVerification, OpVerifySMSCode:
		return op, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownOperation)
	}
}
