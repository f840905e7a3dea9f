package payment

import (
	"context"

	"teahouse-kiosk/internal/logger"
	"teahouse-kiosk/internal/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Confirmer confirms that the customer has paid before an order is placed.
type Confirmer interface {
	Confirm(ctx context.Context, method order.PaymentMethod, amount decimal.Decimal) error
}

// Gateway charges a card or mobile wallet.
type Gateway interface {
	Charge(ctx context.Context, method order.PaymentMethod, amount decimal.Decimal) error
}

type confirmer struct {
	gateway Gateway
}

// NewConfirmer routes cash to the counter and everything else to the gateway.
func NewConfirmer(gateway Gateway) Confirmer {
	return &confirmer{gateway: gateway}
}

func (c *confirmer) Confirm(ctx context.Context, method order.PaymentMethod, amount decimal.Decimal) error {
	log := logger.FromCtx(ctx).With(
		zap.String("payment_method", string(method)),
		zap.String("amount", amount.StringFixed(2)),
	)

	if !method.Valid() {
		return order.ErrInvalidPaymentMethod
	}
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	if method == order.PaymentCash {
		log.Info("cash payment, collect at counter")
		return nil
	}

	return c.gateway.Charge(ctx, method, amount)
}
