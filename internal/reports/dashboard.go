// Package reports assembles the dashboard read model from persisted
// initiatives and the rollup engine.
package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/initiativelab/backend/internal/models"
	"github.com/initiativelab/backend/internal/rollup"
	"github.com/initiativelab/backend/internal/types"
	"gorm.io/gorm"
)

// View selects which month series of the ledger is aggregated.
type View string

const (
	ViewPlan   View = "plan"
	ViewActual View = "actual"
)

func (v View) Valid() bool {
	return v == ViewPlan || v == ViewActual
}

// Options controls how the dashboard is assembled.
type Options struct {
	// Stages limits aggregation to initiatives whose active stage is in
	// the set. nil means all stages.
	Stages rollup.StageSet
	// IncludeOneOff includes the one-off kinds in the chart and totals.
	IncludeOneOff bool
	// Workstream limits aggregation to initiatives of one workstream.
	Workstream *uuid.UUID
	// View selects planned or actual amounts. Empty defaults to plan.
	View View
}

// DefaultOptions are the options used when a caller does not specify any,
// e.g. the snapshot scheduler.
func DefaultOptions() Options {
	return Options{IncludeOneOff: true, View: ViewPlan}
}

// Dashboard is the portfolio read model returned by the dashboard
// endpoint and persisted by the snapshot scheduler.
type Dashboard struct {
	Months    []rollup.MonthDescriptor `json:"months"`    // The contiguous month grid
	Stacks    []rollup.MonthStack      `json:"stacks"`    // Stacked chart data per month
	NetImpact map[types.Month]float64  `json:"netImpact"` // Net impact per month
	Totals    rollup.Totals            `json:"totals"`    // All-months totals per kind
	ROI       *float64                 `json:"roi"`       // Return on one-off investment, null when undefined
	RunRate   float64                  `json:"runRate"`   // Annualized trailing net impact
	Years     rollup.YearSummaries     `json:"years"`     // Fiscal and calendar year buckets
}

// Build assembles the dashboard for one portfolio at the given point in
// time. The current time is a parameter so that snapshots and tests are
// reproducible.
func Build(portfolio models.Portfolio, now time.Time, opts Options) (Dashboard, error) {
	if opts.View == "" {
		opts.View = ViewPlan
	}

	initiatives, err := loadInitiatives(portfolio, opts.Workstream)
	if err != nil {
		return Dashboard{}, err
	}

	stages := opts.Stages
	if stages == nil {
		stages = rollup.NewStageSet(models.Stages()...)
	}

	// Both series are aggregated since the month grid spans planned and
	// recorded months regardless of the selected view.
	plan := rollup.Aggregate(initiatives, stages, rollup.Kinds(), rollup.PlannedAmounts)
	actual := rollup.Aggregate(initiatives, stages, rollup.Kinds(), rollup.ActualAmounts)

	months := rollup.BuildMonths(now, []rollup.MonthSet{plan.Months, actual.Months}, portfolio.PlanPeriodEnd())

	view := plan
	if opts.View == ViewActual {
		view = actual
	}

	benefitKinds := rollup.BenefitKinds(opts.IncludeOneOff)
	costKinds := rollup.CostKinds(opts.IncludeOneOff)

	impact := rollup.NetImpact(months, benefitKinds, costKinds, view.Totals)
	totals := rollup.AggregateTotals(view.Totals, benefitKinds, costKinds)

	// Year buckets only cover months the ledger observed. The net-impact
	// series spans the whole grid, but padding months must not produce
	// empty years.
	observedImpact := make(map[types.Month]float64, len(view.Months))
	for month := range view.Months {
		observedImpact[month] = impact[month]
	}

	return Dashboard{
		Months:    months,
		Stacks:    rollup.BuildStacks(months, benefitKinds, costKinds, view.Totals, nil),
		NetImpact: impact,
		Totals:    totals,
		ROI:       rollup.ROI(totals),
		RunRate:   rollup.RunRate(view.Months, impact),
		Years:     rollup.CalculateYearSummaries(observedImpact, portfolio.FiscalStartMonth()),
	}, nil
}

// loadInitiatives reads all unarchived initiatives of the portfolio with
// their ledger and converts them into the engine's representation.
func loadInitiatives(portfolio models.Portfolio, workstream *uuid.UUID) ([]rollup.Initiative, error) {
	q := models.DB.
		Where("portfolio_id = ?", portfolio.ID).
		Where("archived = ?", false)

	if workstream != nil {
		q = q.Where("workstream_id = ?", *workstream)
	}

	var stored []models.Initiative
	if err := q.Find(&stored).Error; err != nil {
		return nil, err
	}

	if len(stored) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(stored))
	for _, initiative := range stored {
		ids = append(ids, initiative.ID)
	}

	var entries []models.FinancialEntry
	err := models.DB.
		Preload("Amounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("month ASC")
		}).
		Where("initiative_id IN ?", ids).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	byInitiative := make(map[uuid.UUID][]models.FinancialEntry, len(stored))
	for _, entry := range entries {
		byInitiative[entry.InitiativeID] = append(byInitiative[entry.InitiativeID], entry)
	}

	initiatives := make([]rollup.Initiative, 0, len(stored))
	for _, initiative := range stored {
		financials := make(map[rollup.Stage]map[rollup.Kind][]rollup.Entry)

		for _, entry := range byInitiative[initiative.ID] {
			distribution := make(map[types.Month]float64, len(entry.Amounts))
			actuals := make(map[types.Month]float64)

			for _, amount := range entry.Amounts {
				distribution[amount.Month] = amount.Planned.InexactFloat64()

				// A missing actual means "not yet recorded", never zero
				if amount.Actual.Valid {
					actuals[amount.Month] = amount.Actual.Decimal.InexactFloat64()
				}
			}

			byKind := financials[entry.Stage]
			if byKind == nil {
				byKind = make(map[rollup.Kind][]rollup.Entry)
				financials[entry.Stage] = byKind
			}

			byKind[entry.Kind] = append(byKind[entry.Kind], rollup.Entry{
				Distribution: distribution,
				Actuals:      actuals,
			})
		}

		initiatives = append(initiatives, rollup.Initiative{
			ID:          initiative.ID,
			ActiveStage: initiative.ActiveStage,
			Financials:  financials,
		})
	}

	return initiatives, nil
}
