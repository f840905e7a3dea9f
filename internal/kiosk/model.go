package kiosk

import (
	"context"

	"teahouse-kiosk/internal/cart"
	"teahouse-kiosk/internal/catalog"
	"teahouse-kiosk/internal/discount"
	"teahouse-kiosk/internal/order"
)

// CatalogLoader is the shared product cache.
type CatalogLoader interface {
	Load(ctx context.Context) ([]catalog.Product, error)
	Refresh(ctx context.Context) ([]catalog.Product, error)
}

// View is what the kiosk screen shows for the cart.
type View struct {
	Cart      cart.Cart
	Totals    order.Totals
	Discount  *discount.Descriptor
	Notes     string
	ItemCount int
}

// CatalogView is the listing a customer can order from.
type CatalogView struct {
	Groups         []catalog.Group
	Categories     []string
	ActiveCategory string
}

type CheckoutResult struct {
	Receipt *order.Receipt
	Totals  order.Totals
}
