package cart

import (
	"teahouse-kiosk/internal/catalog"

	"github.com/google/uuid"
)

var newLineItemID = uuid.NewString

// New returns an empty cart.
func New() Cart {
	return Cart{}
}

// AddItem adds one drink. If a row with the same product and customization
// already exists its quantity goes up by one instead.
func AddItem(c Cart, p catalog.Product, cust Customization) Cart {
	for i, li := range c.items {
		if li.Product.ID == p.ID && li.Customization.Matches(cust) {
			return c.withItem(i, func(li *LineItem) {
				li.Quantity = clampQuantity(li.Quantity + 1)
			})
		}
	}

	snapshot := cust.clone()
	item := LineItem{
		ID:             newLineItemID(),
		Product:        p,
		Quantity:       MinQuantity,
		Customization:  snapshot,
		FinalUnitPrice: ComputeUnitPrice(p, snapshot),
	}

	items := make([]LineItem, len(c.items), len(c.items)+1)
	copy(items, c.items)
	return Cart{items: append(items, item), version: c.version + 1}
}

// EditItem replaces the customization of a row and reprices it from the
// product's base price. Unknown ids leave the cart as is.
func EditItem(c Cart, lineItemID string, cust Customization) Cart {
	i := c.indexOf(lineItemID)
	if i < 0 {
		return c
	}
	return c.withItem(i, func(li *LineItem) {
		li.Customization = cust.clone()
		li.FinalUnitPrice = ComputeUnitPrice(li.Product, li.Customization)
	})
}

// AdjustQuantity adds delta to a row's quantity, clamped to [1, 99].
// Unknown ids leave the cart as is.
func AdjustQuantity(c Cart, lineItemID string, delta int) Cart {
	i := c.indexOf(lineItemID)
	if i < 0 {
		return c
	}
	return c.withItem(i, func(li *LineItem) {
		li.Quantity = clampQuantity(li.Quantity + delta)
	})
}

// RemoveItem drops a row. Removing an absent id is a no-op.
func RemoveItem(c Cart, lineItemID string) Cart {
	i := c.indexOf(lineItemID)
	if i < 0 {
		return c
	}
	items := make([]LineItem, 0, len(c.items)-1)
	items = append(items, c.items[:i]...)
	items = append(items, c.items[i+1:]...)
	return Cart{items: items, version: c.version + 1}
}

// Clear empties the cart while keeping the version moving forward.
func Clear(c Cart) Cart {
	return Cart{version: c.version + 1}
}

// Find looks a row up by id.
func Find(c Cart, lineItemID string) (LineItem, bool) {
	i := c.indexOf(lineItemID)
	if i < 0 {
		return LineItem{}, false
	}
	li := c.items[i]
	li.Customization = li.Customization.clone()
	return li, true
}

// ItemCount is the number of drinks in the cart, counting quantities.
func ItemCount(c Cart) int {
	n := 0
	for _, li := range c.items {
		n += li.Quantity
	}
	return n
}

func (c Cart) indexOf(lineItemID string) int {
	for i, li := range c.items {
		if li.ID == lineItemID {
			return i
		}
	}
	return -1
}

// withItem copies the cart and applies fn to the copy of row i.
func (c Cart) withItem(i int, fn func(*LineItem)) Cart {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	fn(&items[i])
	return Cart{items: items, version: c.version + 1}
}

func clampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
