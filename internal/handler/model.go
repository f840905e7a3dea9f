package handler

import (
	"time"

	"teahouse-kiosk/internal/cart"
	"teahouse-kiosk/internal/catalog"
	"teahouse-kiosk/internal/discount"

	"github.com/shopspring/decimal"
)

type itemRequest struct {
	ProductID  int64    `json:"product_id"`
	Size       string   `json:"size"`
	SugarLevel string   `json:"sugar_level"`
	IceLevel   string   `json:"ice_level"`
	Toppings   []string `json:"toppings"`
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

type discountRequest struct {
	Code string `json:"code"`
}

type notesRequest struct {
	SpecialNotes string `json:"special_notes"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type catalogResponse struct {
	Categories     []string        `json:"categories"`
	ActiveCategory string          `json:"active_category"`
	Groups         []catalog.Group `json:"groups"`
	Toppings       []string        `json:"toppings"`
}

type lineItemResponse struct {
	ID            string             `json:"cart_id"`
	Product       catalog.Product    `json:"product"`
	Quantity      int                `json:"quantity"`
	Customization cart.Customization `json:"customization"`
	Toppings      string             `json:"toppings_display"`
	FinalPrice    decimal.Decimal    `json:"final_price"`
	LineTotal     decimal.Decimal    `json:"line_total"`
}

type discountResponse struct {
	Code  string          `json:"code"`
	Kind  discount.Kind   `json:"type"`
	Value decimal.Decimal `json:"value"`
	Rules string          `json:"rules"`
}

type cartResponse struct {
	Items          []lineItemResponse `json:"items"`
	ItemCount      int                `json:"item_count"`
	Version        uint64             `json:"version"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Tax            decimal.Decimal    `json:"tax"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	Discount       *discountResponse  `json:"discount"`
	SpecialNotes   string             `json:"special_notes"`
}

type checkoutResponse struct {
	OrderID    string          `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Tax        decimal.Decimal `json:"tax"`
	AcceptedAt time.Time       `json:"accepted_at"`
}

type rejectionResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}
