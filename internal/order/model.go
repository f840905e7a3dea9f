package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard      PaymentMethod = "Card"
	PaymentMobilePay PaymentMethod = "Mobile Pay"
	PaymentCash      PaymentMethod = "Cash"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentMobilePay, PaymentCash:
		return true
	}
	return false
}

// Totals are derived from the cart and discount on every read.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Tax            decimal.Decimal `json:"tax"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// Payload is the order body handed to the order-acceptance backend.
type Payload struct {
	Time          string          `json:"time"`
	Day           int             `json:"day"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Tip           decimal.Decimal `json:"tip"`
	SpecialNotes  string          `json:"special_notes"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Items         []PayloadItem   `json:"items"`
	Tax           decimal.Decimal `json:"tax"`
}

type PayloadItem struct {
	ProductID  int64           `json:"product_id"`
	Size       string          `json:"size"`
	SugarLevel string          `json:"sugar_level"`
	IceLevel   string          `json:"ice_level"`
	Toppings   string          `json:"toppings"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

// Receipt is what the backend hands back for an accepted order.
type Receipt struct {
	OrderID    string          `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	AcceptedAt time.Time       `json:"accepted_at"`
}
