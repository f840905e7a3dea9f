package order

import "errors"

var (
	ErrOrderSubmissionFailed = errors.New("order submission failed")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
)

// SubmissionError is a rejection reported by the order backend. The message
// is meant for the operator.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrOrderSubmissionFailed}
	}
	return []error{ErrOrderSubmissionFailed, e.Err}
}

func submissionFailed(message string, err error) error {
	if message == "" {
		message = "Failed to submit order"
	}
	return &SubmissionError{Message: message, Err: err}
}
