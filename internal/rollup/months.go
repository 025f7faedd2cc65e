package rollup

import (
	"time"

	"github.com/initiativelab/backend/internal/types"
)

// maxGridMonths caps the month grid at 30 years so that a stray far-future
// month key cannot blow up memory or the rendering layer.
const maxGridMonths = 360

// PeriodEnd is the configured end of the planning horizon.
type PeriodEnd struct {
	Month int `json:"month"` // 1-12
	Year  int `json:"year"`
}

// Valid reports whether the period end denotes a real calendar month.
func (p PeriodEnd) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year > 0
}

// MonthDescriptor is one cell of the month grid.
type MonthDescriptor struct {
	Key   types.Month `json:"key"`
	Label string      `json:"label"` // short month name, e.g. "Jan"
	Year  int         `json:"year"`
	Index int         `json:"index"` // position in the grid, starting at 0
}

// BuildMonths turns the observed month sets of one or more aggregations
// and the configured planning horizon into a contiguous, ascending list of
// calendar months.
//
// The grid starts at the earliest observed month (or the month of now, if
// nothing was observed) and ends at the latest of: the latest observed
// month, the configured period end, or a rolling 12-month window from now.
// A period end in the past falls back to the rolling window. Degenerate
// ranges are clamped to a single month, and the grid is truncated at 360
// months.
func BuildMonths(now time.Time, observed []MonthSet, end PeriodEnd) []MonthDescriptor {
	current := types.MonthOf(now)

	// Rolling 12-month fallback horizon
	baselineEnd := current.AddMonths(11)
	if end.Valid() {
		candidate := types.NewMonth(end.Year, time.Month(end.Month))
		if !candidate.Before(current) {
			baselineEnd = candidate
		}
	}

	var earliest, latest types.Month
	for _, set := range observed {
		for month := range set {
			if !month.Valid() {
				continue
			}

			if earliest.IsZero() || month.Before(earliest) {
				earliest = month
			}
			if latest.IsZero() || month.After(latest) {
				latest = month
			}
		}
	}

	start := current
	if !earliest.IsZero() {
		start = earliest
	}

	gridEnd := baselineEnd
	if !latest.IsZero() && latest.After(gridEnd) {
		gridEnd = latest
	}

	if start.After(gridEnd) {
		start = gridEnd
	}

	months := make([]MonthDescriptor, 0, 12)
	for month := start; !month.After(gridEnd) && len(months) < maxGridMonths; month = month.AddMonths(1) {
		months = append(months, MonthDescriptor{
			Key:   month,
			Label: month.Time().Format("Jan"),
			Year:  month.Year,
			Index: len(months),
		})
	}

	return months
}
