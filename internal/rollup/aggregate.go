package rollup

import (
	"math"

	"github.com/initiativelab/backend/internal/types"
)

// KindTotals maps every aggregated kind to its per-month sums.
type KindTotals map[Kind]map[types.Month]float64

// Amount returns the total for a kind and month, zero if nothing was
// aggregated for the combination.
func (t KindTotals) Amount(kind Kind, month types.Month) float64 {
	return t[kind][month]
}

// MonthSet is the set of months for which at least one contributing entry
// had a recorded value. Explicit zeroes count as observed.
type MonthSet map[types.Month]struct{}

// Result is the outcome of one aggregation pass.
type Result struct {
	Totals KindTotals
	Months MonthSet
}

// Aggregate sums the selected month series of all line entries of the
// requested kinds, across every initiative whose active stage is in the
// stage filter.
//
// Values that are NaN or infinite are skipped and do not mark their month
// as observed. Summation is commutative, so the iteration order of
// initiatives and entries does not affect the result beyond ordinary
// IEEE-754 rounding.
func Aggregate(initiatives []Initiative, stages StageSet, kinds []Kind, selector Selector) Result {
	totals := make(KindTotals, len(kinds))
	for _, kind := range kinds {
		totals[kind] = make(map[types.Month]float64)
	}

	months := make(MonthSet)

	for _, initiative := range initiatives {
		if !stages.Contains(initiative.ActiveStage) {
			continue
		}

		byKind := initiative.Financials[initiative.ActiveStage]

		for _, kind := range kinds {
			for _, entry := range byKind[kind] {
				for month, value := range selector(entry) {
					if math.IsNaN(value) || math.IsInf(value, 0) {
						continue
					}

					totals[kind][month] += value
					months[month] = struct{}{}
				}
			}
		}
	}

	return Result{Totals: totals, Months: months}
}
