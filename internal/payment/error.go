package payment

import "errors"

var (
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrInvalidAmount      = errors.New("invalid payment amount")
)
