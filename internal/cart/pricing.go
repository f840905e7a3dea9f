package cart

import (
	"teahouse-kiosk/internal/catalog"

	"github.com/shopspring/decimal"
)

var (
	surchargeSmall   = decimal.RequireFromString("-0.50")
	surchargeLarge   = decimal.RequireFromString("1.00")
	surchargeBucees  = decimal.RequireFromString("2.00")
	surchargeTopping = decimal.RequireFromString("0.75")
)

// ComputeUnitPrice prices one drink. The topping surcharge is flat, however
// many toppings are picked.
func ComputeUnitPrice(p catalog.Product, c Customization) decimal.Decimal {
	price := p.Price

	switch c.Size {
	case SizeSmall:
		price = price.Add(surchargeSmall)
	case SizeLarge:
		price = price.Add(surchargeLarge)
	case SizeBucees:
		price = price.Add(surchargeBucees)
	}

	if c.HasToppings() {
		price = price.Add(surchargeTopping)
	}

	return price
}
