package preference

import "errors"

var (
	ErrInvalidScreen = errors.New("invalid screen")
	ErrMissingDevice = errors.New("device id is required")
)
