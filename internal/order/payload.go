package order

import (
	"time"

	"teahouse-kiosk/internal/cart"

	"github.com/shopspring/decimal"
)

// BuildPayload serializes the cart and its totals for submission. Tip entry
// is not offered at the kiosk, so tip is always zero.
func BuildPayload(c cart.Cart, totals Totals, notes string, method PaymentMethod, now time.Time) Payload {
	items := make([]PayloadItem, 0, c.Len())
	for _, li := range c.Items() {
		items = append(items, PayloadItem{
			ProductID:  li.Product.ID,
			Size:       string(li.Customization.Size),
			SugarLevel: string(li.Customization.Sugar),
			IceLevel:   string(li.Customization.Ice),
			Toppings:   li.Customization.ToppingString(),
			Price:      li.FinalUnitPrice,
			Quantity:   li.Quantity,
		})
	}

	return Payload{
		Time:          now.Format("15:04:05"),
		Day:           now.Day(),
		Month:         int(now.Month()),
		Year:          now.Year(),
		TotalPrice:    totals.GrandTotal,
		Tip:           decimal.Zero,
		SpecialNotes:  notes,
		PaymentMethod: method,
		Items:         items,
		Tax:           totals.Tax,
	}
}
