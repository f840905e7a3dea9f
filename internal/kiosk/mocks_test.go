package kiosk

import (
	"context"

	"teahouse-kiosk/internal/catalog"
	"teahouse-kiosk/internal/discount"
	"teahouse-kiosk/internal/order"
	"teahouse-kiosk/internal/preference"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Load(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockCatalog) Refresh(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

type MockDiscounts struct {
	mock.Mock
}

func (m *MockDiscounts) Apply(ctx context.Context, code string) (discount.Descriptor, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(discount.Descriptor), args.Error(1)
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) Submit(ctx context.Context, params order.SubmitParams) (*order.Receipt, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Receipt), args.Error(1)
}

func (m *MockOrders) TaxRate() decimal.Decimal {
	return decimal.RequireFromString("0.0825")
}

type MockPayments struct {
	mock.Mock
}

func (m *MockPayments) Confirm(ctx context.Context, method order.PaymentMethod, amount decimal.Decimal) error {
	args := m.Called(ctx, method, amount)
	return args.Error(0)
}

type MockPreferences struct {
	mock.Mock
}

func (m *MockPreferences) Get(ctx context.Context, deviceID string) (preference.Preferences, error) {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(preference.Preferences), args.Error(1)
}

func (m *MockPreferences) Save(ctx context.Context, deviceID string, p preference.Preferences) error {
	args := m.Called(ctx, deviceID, p)
	return args.Error(0)
}

func (m *MockPreferences) Reset(ctx context.Context, deviceID string) error {
	args := m.Called(ctx, deviceID)
	return args.Error(0)
}

func (m *MockPreferences) Close() error {
	return nil
}
