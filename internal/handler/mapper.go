package handler

import (
	"teahouse-kiosk/internal/cart"
	"teahouse-kiosk/internal/discount"
	"teahouse-kiosk/internal/kiosk"
)

func toCatalogResponse(v kiosk.CatalogView) catalogResponse {
	return catalogResponse{
		Categories:     v.Categories,
		ActiveCategory: v.ActiveCategory,
		Groups:         v.Groups,
		Toppings:       cart.AvailableToppings,
	}
}

func toCartResponse(v kiosk.View) cartResponse {
	items := make([]lineItemResponse, 0, v.Cart.Len())
	for _, li := range v.Cart.Items() {
		items = append(items, lineItemResponse{
			ID:            li.ID,
			Product:       li.Product,
			Quantity:      li.Quantity,
			Customization: li.Customization,
			Toppings:      li.Customization.ToppingString(),
			FinalPrice:    li.FinalUnitPrice,
			LineTotal:     li.LineTotal(),
		})
	}

	var d *discountResponse
	if v.Discount != nil {
		d = &discountResponse{
			Code:  v.Discount.Code,
			Kind:  v.Discount.Kind,
			Value: v.Discount.Value,
			Rules: discount.RulesText,
		}
	}

	return cartResponse{
		Items:          items,
		ItemCount:      v.ItemCount,
		Version:        v.Cart.Version(),
		Subtotal:       v.Totals.Subtotal,
		DiscountAmount: v.Totals.DiscountAmount,
		Tax:            v.Totals.Tax,
		GrandTotal:     v.Totals.GrandTotal,
		Discount:       d,
		SpecialNotes:   v.Notes,
	}
}
