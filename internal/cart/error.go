package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidSize    = errors.New("invalid size")
	ErrInvalidLevel   = errors.New("invalid sugar or ice level")
	ErrUnknownTopping = errors.New("unknown topping")
)
