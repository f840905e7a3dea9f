package order

import (
	"context"
	"time"

	"teahouse-kiosk/internal/cart"
	"teahouse-kiosk/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SubmitParams is everything needed to place one order.
type SubmitParams struct {
	Cart          cart.Cart
	Totals        Totals
	SpecialNotes  string
	PaymentMethod PaymentMethod
}

type Service interface {
	Submit(ctx context.Context, params SubmitParams) (*Receipt, error)
	TaxRate() decimal.Decimal
}

type service struct {
	acceptor Acceptor
	taxRate  decimal.Decimal
	now      func() time.Time
}

func NewService(acceptor Acceptor, taxRate decimal.Decimal) Service {
	return &service{acceptor: acceptor, taxRate: taxRate, now: time.Now}
}

func (s *service) TaxRate() decimal.Decimal {
	return s.taxRate
}

// Submit builds the payload and calls the acceptor exactly once.
func (s *service) Submit(ctx context.Context, params SubmitParams) (*Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("payment_method", string(params.PaymentMethod)),
		zap.Int("lines", params.Cart.Len()),
	)
	log.Info("Submit order started")

	if params.Cart.IsEmpty() {
		log.Warn("Submit order validation failed: empty cart")
		return nil, ErrEmptyCart
	}
	if !params.PaymentMethod.Valid() {
		log.Warn("Submit order validation failed: payment method")
		return nil, ErrInvalidPaymentMethod
	}

	payload := BuildPayload(params.Cart, params.Totals, params.SpecialNotes, params.PaymentMethod, s.now())

	receipt, err := s.acceptor.Submit(ctx, payload)
	if err != nil {
		log.Warn("order submission failed", zap.Error(err))
		return nil, err
	}

	log.Info("order accepted", zap.String("order_id", receipt.OrderID))
	return receipt, nil
}
