package rollup

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/initiativelab/backend/internal/types"
)

// runRateWindow is the trailing number of observed months the run rate is
// derived from.
const runRateWindow = 12

// NetImpact returns the net monthly impact for every month of the grid:
// the sum of the benefit kinds minus the sum of the cost kinds, both at
// their stored magnitudes.
func NetImpact(months []MonthDescriptor, benefitKinds, costKinds []Kind, totals KindTotals) map[types.Month]float64 {
	impact := make(map[types.Month]float64, len(months))

	for _, month := range months {
		var net float64
		for _, kind := range benefitKinds {
			net += totals.Amount(kind, month.Key)
		}
		for _, kind := range costKinds {
			net -= totals.Amount(kind, month.Key)
		}

		impact[month.Key] = net
	}

	return impact
}

// Totals is the all-months rollup of the four kinds for one view.
type Totals struct {
	RecurringBenefits float64 `json:"recurringBenefits"`
	RecurringCosts    float64 `json:"recurringCosts"`
	OneOffBenefits    float64 `json:"oneoffBenefits"`
	OneOffCosts       float64 `json:"oneoffCosts"`
	RecurringImpact   float64 `json:"recurringImpact"`
}

// AggregateTotals sums each kind across all months, but only for kinds
// included in the active benefit and cost sets. Excluded kinds stay zero,
// which lets the one-off toggle blank a whole category without
// re-filtering the source data. RecurringImpact is always the difference
// of the recurring figures.
func AggregateTotals(totals KindTotals, benefitKinds, costKinds []Kind) Totals {
	active := make(map[Kind]struct{}, len(benefitKinds)+len(costKinds))
	for _, kind := range benefitKinds {
		active[kind] = struct{}{}
	}
	for _, kind := range costKinds {
		active[kind] = struct{}{}
	}

	sum := func(kind Kind) float64 {
		if _, ok := active[kind]; !ok {
			return 0
		}

		var s float64
		for _, value := range totals[kind] {
			s += value
		}

		return s
	}

	result := Totals{
		RecurringBenefits: sum(KindRecurringBenefit),
		RecurringCosts:    sum(KindRecurringCost),
		OneOffBenefits:    sum(KindOneOffBenefit),
		OneOffCosts:       sum(KindOneOffCost),
	}
	result.RecurringImpact = result.RecurringBenefits - result.RecurringCosts

	return result
}

// ROI returns the return on one-off investment, or nil when it is
// undefined: without a one-off cost there is nothing to divide by, and
// "ROI is undefined" must stay distinguishable from "ROI is zero".
// Non-finite results are reported as undefined as well.
func ROI(t Totals) *float64 {
	denominator := t.OneOffCosts
	if denominator == 0 || math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return nil
	}

	roi := (t.RecurringBenefits + t.OneOffBenefits - t.RecurringCosts - t.OneOffCosts) / denominator
	if math.IsNaN(roi) || math.IsInf(roi, 0) {
		return nil
	}

	return &roi
}

// RunRate annualizes recent trailing performance: the mean net impact of
// the most recent observed months (at most twelve), multiplied by twelve.
// Without any observed month the run rate is zero.
func RunRate(observed MonthSet, impact map[types.Month]float64) float64 {
	months := make([]types.Month, 0, len(observed))
	for month := range observed {
		months = append(months, month)
	}

	sort.Slice(months, func(i, j int) bool {
		return months[j].Before(months[i])
	})

	if len(months) > runRateWindow {
		months = months[:runRateWindow]
	}

	if len(months) == 0 {
		return 0
	}

	var sum float64
	for _, month := range months {
		sum += impact[month]
	}

	return sum / float64(len(months)) * 12
}

// YearSummary is the summed net impact of one year bucket.
type YearSummary struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// YearSummaries groups the net-impact series into fiscal and calendar
// year buckets.
type YearSummaries struct {
	Fiscal   []YearSummary `json:"fiscal"`
	Calendar []YearSummary `json:"calendar"`
}

// CalculateYearSummaries buckets the net-impact series into calendar
// years and into fiscal years starting at fiscalStart. Both lists are
// sorted ascending. Fiscal years are labelled "FY2025/26" unless the
// fiscal year coincides with the calendar year.
func CalculateYearSummaries(impact map[types.Month]float64, fiscalStart time.Month) YearSummaries {
	if fiscalStart < time.January || fiscalStart > time.December {
		fiscalStart = time.January
	}

	calendar := make(map[int]float64)
	fiscal := make(map[int]float64)

	for month, value := range impact {
		calendar[month.Year] += value

		fiscalYear := month.Year
		if month.Month < fiscalStart {
			fiscalYear--
		}
		fiscal[fiscalYear] += value
	}

	calendarLabel := func(year int) string {
		return fmt.Sprintf("%d", year)
	}
	fiscalLabel := calendarLabel
	if fiscalStart != time.January {
		fiscalLabel = func(year int) string {
			return fmt.Sprintf("FY%d/%02d", year, (year+1)%100)
		}
	}

	return YearSummaries{
		Fiscal:   sortedSummaries(fiscal, fiscalLabel),
		Calendar: sortedSummaries(calendar, calendarLabel),
	}
}

func sortedSummaries(byYear map[int]float64, label func(int) string) []YearSummary {
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	summaries := make([]YearSummary, 0, len(years))
	for _, year := range years {
		summaries = append(summaries, YearSummary{Label: label(year), Value: byYear[year]})
	}

	return summaries
}
