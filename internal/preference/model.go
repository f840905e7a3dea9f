package preference

type Screen string

const (
	ScreenMenu     Screen = "menu"
	ScreenCart     Screen = "cart"
	ScreenCheckout Screen = "checkout"
)

// Preferences survive kiosk restarts. They never hold cart contents.
type Preferences struct {
	ActiveCategory string `json:"active_category"`
	HighContrast   bool   `json:"high_contrast"`
	CurrentScreen  Screen `json:"current_screen"`
}

func Defaults() Preferences {
	return Preferences{CurrentScreen: ScreenMenu}
}

func (s Screen) Valid() bool {
	switch s {
	case ScreenMenu, ScreenCart, ScreenCheckout:
		return true
	}
	return false
}
