package catalog

import (
	"fmt"
	"strings"
)

// GroupByCategory buckets products by category, keeping the order in which
// categories and products first appear.
func GroupByCategory(products []Product) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, p := range products {
		category := categoryOf(p)
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, Group{Category: category})
		}
		groups[i].Products = append(groups[i].Products, p)
	}

	return groups
}

// Categories lists the distinct category names in first-appearance order.
func Categories(products []Product) []string {
	groups := GroupByCategory(products)
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Category)
	}
	return names
}

// KioskListing drops products that customers may not order themselves. The
// name must match exactly apart from case.
func KioskListing(products []Product) []Product {
	listed := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Name, CustomTeaName) {
			continue
		}
		listed = append(listed, p)
	}
	return listed
}

func categoryOf(p Product) string {
	if strings.TrimSpace(p.Category) == "" {
		return OtherCategory
	}
	return p.Category
}

func validate(products []Product) error {
	seen := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.Name) == "" || p.Price.IsNegative() {
			return fmt.Errorf("%w: id %d", ErrInvalidProduct, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateProduct, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
