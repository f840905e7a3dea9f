package discount

import "errors"

const (
	ReasonInvalidCode = "Invalid code"
	ReasonServerError = "Server error"
)

var (
	ErrDiscountRejected = errors.New("discount rejected")
	ErrUnknownKind      = errors.New("unknown discount type")
)

// RejectedError carries the reason a code was refused, for display next to
// the discount input.
type RejectedError struct {
	Code   string
	Reason string
}

func (e *RejectedError) Error() string {
	return "discount " + e.Code + " rejected: " + e.Reason
}

func (e *RejectedError) Unwrap() error {
	return ErrDiscountRejected
}

func reject(code, reason string) error {
	if reason == "" {
		reason = ReasonInvalidCode
	}
	return &RejectedError{Code: code, Reason: reason}
}
