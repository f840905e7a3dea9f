package catalog

import "errors"

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// -- Validation of source data --
	ErrInvalidProduct   = errors.New("invalid product record")
	ErrDuplicateProduct = errors.New("duplicate product id")
)
