package cart

import (
	"fmt"
	"strings"
)

// ParseCustomization validates raw form values. Toppings may be given as
// separate entries, as one comma-joined string, or both; blanks and repeats
// are dropped.
func ParseCustomization(size, sugar, ice string, toppings []string) (Customization, error) {
	c := Customization{
		Size:  Size(strings.TrimSpace(size)),
		Sugar: Level(strings.TrimSpace(sugar)),
		Ice:   Level(strings.TrimSpace(ice)),
	}

	switch c.Size {
	case SizeSmall, SizeMedium, SizeLarge, SizeBucees:
	default:
		return Customization{}, fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}

	if !validLevel(c.Sugar) {
		return Customization{}, fmt.Errorf("%w: sugar %q", ErrInvalidLevel, sugar)
	}
	if !validLevel(c.Ice) {
		return Customization{}, fmt.Errorf("%w: ice %q", ErrInvalidLevel, ice)
	}

	seen := make(map[string]struct{})
	for _, raw := range toppings {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			canonical, ok := lookupTopping(name)
			if !ok {
				return Customization{}, fmt.Errorf("%w: %q", ErrUnknownTopping, name)
			}
			if _, dup := seen[canonical]; dup {
				continue
			}
			seen[canonical] = struct{}{}
			c.Toppings = append(c.Toppings, canonical)
		}
	}

	return c, nil
}

func validLevel(l Level) bool {
	switch l {
	case Level0, Level50, Level75, Level100:
		return true
	}
	return false
}

func lookupTopping(name string) (string, bool) {
	for _, t := range AvailableToppings {
		if strings.EqualFold(t, name) {
			return t, true
		}
	}
	return "", false
}
