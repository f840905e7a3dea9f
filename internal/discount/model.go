package discount

import "github.com/shopspring/decimal"

type Kind string

const (
	KindPercent Kind = "percent"
	KindFixed   Kind = "fixed"
)

// RulesText is shown next to an applied code.
const RulesText = "Only one discount code can be applied at a time."

// Descriptor is a validated discount applied to the whole order.
type Descriptor struct {
	Code  string          `json:"code"`
	Kind  Kind            `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// Result is the validator's verdict on a code.
type Result struct {
	Valid  bool            `json:"valid"`
	Kind   Kind            `json:"type,omitempty"`
	Value  decimal.Decimal `json:"value"`
	Reason string          `json:"reason,omitempty"`
}
