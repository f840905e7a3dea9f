package order

import (
	"teahouse-kiosk/internal/cart"
	"teahouse-kiosk/internal/discount"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives subtotal, discount, tax and grand total. Tax is
// charged on the discounted subtotal and rounded to cents before it is added.
func ComputeTotals(c cart.Cart, d *discount.Descriptor, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, li := range c.Items() {
		subtotal = subtotal.Add(li.LineTotal())
	}

	discountAmount := DiscountAmount(subtotal, d)
	taxable := subtotal.Sub(discountAmount)
	tax := RoundCents(taxable.Mul(taxRate))

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Tax:            tax,
		GrandTotal:     taxable.Add(tax),
	}
}

// DiscountAmount is the amount taken off subtotal. Percent values are clamped
// to [0, 100]; fixed values to [0, subtotal].
func DiscountAmount(subtotal decimal.Decimal, d *discount.Descriptor) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}

	switch d.Kind {
	case discount.KindPercent:
		pct := clamp(d.Value, decimal.Zero, hundred)
		return subtotal.Mul(pct).Div(hundred)
	case discount.KindFixed:
		return clamp(d.Value, decimal.Zero, subtotal)
	}
	return decimal.Zero
}

// RoundCents rounds half away from zero to two places, which is half-up for
// the non-negative amounts seen here.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
