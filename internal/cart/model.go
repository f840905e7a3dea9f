package cart

import (
	"sort"
	"strings"

	"teahouse-kiosk/internal/catalog"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
	SizeBucees Size = "Bucee's"
)

// Level is a sugar or ice percentage.
type Level string

const (
	Level0   Level = "0"
	Level50  Level = "50"
	Level75  Level = "75"
	Level100 Level = "100"
)

// AvailableToppings is the fixed topping menu, in display order.
var AvailableToppings = []string{
	"Boba",
	"Lychee Jelly",
	"Grass Jelly",
	"Pudding",
	"Red Bean",
	"Crystal Boba",
}

// Customization is what the customer picked in the drink form.
type Customization struct {
	Size     Size     `json:"size"`
	Sugar    Level    `json:"sugar_level"`
	Ice      Level    `json:"ice_level"`
	Toppings []string `json:"toppings"`
}

// DefaultCustomization mirrors the kiosk form's initial selection.
func DefaultCustomization() Customization {
	return Customization{Size: SizeMedium, Sugar: Level75, Ice: Level75}
}

// ToppingString is the comma-joined form used on order payloads.
func (c Customization) ToppingString() string {
	return strings.Join(c.Toppings, ", ")
}

// HasToppings reports whether any topping was chosen.
func (c Customization) HasToppings() bool {
	return len(c.Toppings) > 0
}

// Matches reports whether two customizations describe the same drink.
// Toppings are compared as a set.
func (c Customization) Matches(other Customization) bool {
	return c.Size == other.Size &&
		c.Sugar == other.Sugar &&
		c.Ice == other.Ice &&
		sameToppings(c.Toppings, other.Toppings)
}

func (c Customization) clone() Customization {
	out := c
	if c.Toppings != nil {
		out.Toppings = append([]string(nil), c.Toppings...)
	}
	return out
}

// LineItem is one priced row of the cart.
type LineItem struct {
	ID             string          `json:"cart_id"`
	Product        catalog.Product `json:"product"`
	Quantity       int             `json:"quantity"`
	Customization  Customization   `json:"customization"`
	FinalUnitPrice decimal.Decimal `json:"final_price"`
}

// LineTotal is the unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.FinalUnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is an immutable list of line items. Every operation in this package
// returns a new Cart and leaves its input untouched.
type Cart struct {
	items   []LineItem
	version uint64
}

// Items returns a copy of the line items.
func (c Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	for i, li := range c.items {
		out[i] = li
		out[i].Customization = li.Customization.clone()
	}
	return out
}

// Version increases on every change.
func (c Cart) Version() uint64 {
	return c.version
}

func (c Cart) Len() int {
	return len(c.items)
}

func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func sameToppings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
