package cart

import (
	"testing"

	"teahouse-kiosk/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tea(id int64, price string) catalog.Product {
	return catalog.Product{ID: id, Name: "Classic Milk Tea", Price: dec(price), Category: "Milk Tea"}
}

func TestComputeUnitPrice(t *testing.T) {
	p := tea(1, "4.00")

	tests := []struct {
		name string
		cust Customization
		want string
	}{
		{"Medium no toppings", Customization{Size: SizeMedium}, "4.00"},
		{"Small", Customization{Size: SizeSmall}, "3.50"},
		{"Large", Customization{Size: SizeLarge}, "5.00"},
		{"Bucee's", Customization{Size: SizeBucees}, "6.00"},
		{"One topping", Customization{Size: SizeMedium, Toppings: []string{"Boba"}}, "4.75"},
		{"Many toppings is still flat", Customization{Size: SizeLarge, Toppings: []string{"Boba", "Pudding", "Red Bean"}}, "5.75"},
		{"Small with topping", Customization{Size: SizeSmall, Toppings: []string{"Boba"}}, "4.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeUnitPrice(p, tt.cust)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestComputeUnitPrice_Pure(t *testing.T) {
	p := tea(1, "4.00")
	c := Customization{Size: SizeBucees, Sugar: Level50, Ice: Level0, Toppings: []string{"Boba"}}

	first := ComputeUnitPrice(p, c)
	second := ComputeUnitPrice(p, c)

	assert.True(t, first.Equal(second))
	assert.True(t, dec("4.00").Equal(p.Price), "base price is unchanged")
	assert.Equal(t, []string{"Boba"}, c.Toppings)
}
