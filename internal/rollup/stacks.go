package rollup

import (
	"math"

	"github.com/initiativelab/backend/internal/types"
)

// SegmentStyle carries the rendering hints for one kind's chart segments.
type SegmentStyle struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// Palette maps kinds to their rendering style.
type Palette map[Kind]SegmentStyle

// DefaultPalette is the style used by the dashboard when the caller does
// not supply one.
var DefaultPalette = Palette{
	KindRecurringBenefit: {Color: "#2e7d32", Label: "Recurring benefits"},
	KindOneOffBenefit:    {Color: "#81c784", Label: "One-off benefits"},
	KindRecurringCost:    {Color: "#c62828", Label: "Recurring costs"},
	KindOneOffCost:       {Color: "#ef9a9a", Label: "One-off costs"},
}

// Segment is one stacked chart segment. Value is always non-negative and
// is what a renderer stacks; RawValue carries the sign of the side the
// segment is on.
type Segment struct {
	Kind     Kind    `json:"kind"`
	Value    float64 `json:"value"`
	RawValue float64 `json:"rawValue"`
	Color    string  `json:"color"`
	Label    string  `json:"label"`
}

// MonthStack is the stacked chart data for one month. PositiveTotal and
// NegativeTotal are the sums of the non-negative segment values on each
// side, so a renderer can scale a bar without re-deriving them.
type MonthStack struct {
	Month         types.Month `json:"month"`
	Segments      []Segment   `json:"segments"`
	PositiveTotal float64     `json:"positiveTotal"`
	NegativeTotal float64     `json:"negativeTotal"`
}

// BuildStacks converts per-kind month totals into signed stacked chart
// segments: benefit kinds on the positive side, cost kinds on the
// negative side.
//
// Cost segments always render as negative regardless of the stored sign,
// so a cost recorded as +500 and one recorded as -500 produce identical
// segments. Zero totals are omitted entirely, which downstream emptiness
// checks rely on.
func BuildStacks(months []MonthDescriptor, benefitKinds, costKinds []Kind, totals KindTotals, palette Palette) []MonthStack {
	if palette == nil {
		palette = DefaultPalette
	}

	stacks := make([]MonthStack, 0, len(months))
	for _, month := range months {
		stack := MonthStack{Month: month.Key}

		for _, kind := range benefitKinds {
			amount := totals.Amount(kind, month.Key)
			if amount == 0 {
				continue
			}

			style := palette[kind]
			stack.Segments = append(stack.Segments, Segment{
				Kind:     kind,
				Value:    math.Abs(amount),
				RawValue: amount,
				Color:    style.Color,
				Label:    style.Label,
			})
			stack.PositiveTotal += math.Abs(amount)
		}

		for _, kind := range costKinds {
			amount := totals.Amount(kind, month.Key)
			if amount == 0 {
				continue
			}

			style := palette[kind]
			stack.Segments = append(stack.Segments, Segment{
				Kind:     kind,
				Value:    math.Abs(amount),
				RawValue: -math.Abs(amount),
				Color:    style.Color,
				Label:    style.Label,
			})
			stack.NegativeTotal += math.Abs(amount)
		}

		stacks = append(stacks, stack)
	}

	return stacks
}
