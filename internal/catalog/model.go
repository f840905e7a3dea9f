package catalog

import "github.com/shopspring/decimal"

// OtherCategory is used for products whose category is empty.
const OtherCategory = "Other"

// CustomTeaName is the build-your-own product that is only sold at the cashier.
const CustomTeaName = "Custom Tea"

// Product is a purchasable drink as published by the product source.
type Product struct {
	ID       int64           `json:"product_id"`
	Name     string          `json:"product_name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	ImageURL string          `json:"img_url,omitempty"`
}

// Group is one category tab of the kiosk menu.
type Group struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
}
