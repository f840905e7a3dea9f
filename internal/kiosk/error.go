package kiosk

import "errors"

var (
	ErrSubmissionInProgress = errors.New("order submission already in progress")
	ErrUnknownProduct       = errors.New("product is not on the menu")
	ErrUnknownCategory      = errors.New("category is not on the menu")
)
