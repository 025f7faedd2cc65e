// Package rollup implements the financial rollup and time-series
// aggregation engine of the portfolio backend.
//
// Everything in this package is a pure function over an in-memory snapshot
// of one portfolio's initiatives. Nothing here reads the database, keeps
// state between calls or mutates its inputs, so results only depend on the
// arguments and repeated calls with equal inputs are safe to memoize.
package rollup

// Kind is one of the four financial line categories.
type Kind string

const (
	KindRecurringBenefit Kind = "recurring-benefit"
	KindRecurringCost    Kind = "recurring-cost"
	KindOneOffBenefit    Kind = "oneoff-benefit"
	KindOneOffCost       Kind = "oneoff-cost"
)

// Kinds returns all financial line kinds.
func Kinds() []Kind {
	return []Kind{KindRecurringBenefit, KindRecurringCost, KindOneOffBenefit, KindOneOffCost}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindRecurringBenefit, KindRecurringCost, KindOneOffBenefit, KindOneOffCost:
		return true
	}

	return false
}

// IsBenefit reports whether the kind is economically positive.
func (k Kind) IsBenefit() bool {
	return k == KindRecurringBenefit || k == KindOneOffBenefit
}

// IsOneOff reports whether the kind is a one-off line.
func (k Kind) IsOneOff() bool {
	return k == KindOneOffBenefit || k == KindOneOffCost
}

// BenefitKinds returns the benefit kinds for a view, with or without
// one-off lines.
func BenefitKinds(includeOneOff bool) []Kind {
	if includeOneOff {
		return []Kind{KindRecurringBenefit, KindOneOffBenefit}
	}

	return []Kind{KindRecurringBenefit}
}

// CostKinds returns the cost kinds for a view, with or without one-off
// lines.
func CostKinds(includeOneOff bool) []Kind {
	if includeOneOff {
		return []Kind{KindRecurringCost, KindOneOffCost}
	}

	return []Kind{KindRecurringCost}
}
