package config

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSetting = errors.New("missing required setting")
	ErrUnknownBackend = errors.New("unknown backend mode")
)

func errMissing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingSetting, name)
}

func errUnknownMode(mode string) error {
	return fmt.Errorf("%w: %q (use %q or %q)", ErrUnknownBackend, mode, BackendHTTP, BackendPostgres)
}
