package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/initiativelab/backend/internal/controllers/v1"
	"github.com/initiativelab/backend/internal/models"
	"github.com/initiativelab/backend/internal/rollup"
	"github.com/initiativelab/backend/internal/types"
	"github.com/initiativelab/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createDashboardFixture sets up a portfolio with one approved initiative:
// a recurring benefit of 100 per month from January to June 2025 with
// actuals recorded for the first three months, and a one-off cost of 500
// in January 2025, fully paid.
func createDashboardFixture(t *testing.T) v1.PortfolioResponse {
	portfolio := createTestPortfolio(t, v1.PortfolioEditable{Name: "Fixture"})
	initiative := createTestInitiative(t, v1.InitiativeEditable{
		PortfolioID: portfolio.Data.ID,
		ActiveStage: models.StageApproved,
	})

	var benefits []v1.AmountEditable
	for month := 1; month <= 6; month++ {
		amount := v1.AmountEditable{
			Month:   types.NewMonth(2025, time.Month(month)),
			Planned: decimal.NewFromInt(100),
		}
		if month <= 3 {
			amount.Actual = decimal.NewNullDecimal(decimal.NewFromInt(100))
		}
		benefits = append(benefits, amount)
	}

	_ = createTestFinancialEntry(t, v1.FinancialEntryEditable{
		InitiativeID: initiative.Data.ID,
		Stage:        models.StageApproved,
		Kind:         rollup.KindRecurringBenefit,
		Amounts:      benefits,
	})

	_ = createTestFinancialEntry(t, v1.FinancialEntryEditable{
		InitiativeID: initiative.Data.ID,
		Stage:        models.StageApproved,
		Kind:         rollup.KindOneOffCost,
		Amounts: []v1.AmountEditable{
			{
				Month:   types.NewMonth(2025, 1),
				Planned: decimal.NewFromInt(500),
				Actual:  decimal.NewNullDecimal(decimal.NewFromInt(500)),
			},
		},
	})

	return portfolio
}

func getDashboard(t *testing.T, portfolio v1.PortfolioResponse, query string) v1.DashboardResponse {
	r := test.Request(t, http.MethodGet, fmt.Sprintf("%s?%s", portfolio.Data.Links.Dashboard, query), "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)

	return response
}

func (suite *TestSuiteStandard) TestDashboardPlanView() {
	portfolio := createDashboardFixture(suite.T())

	response := getDashboard(suite.T(), portfolio, "")
	dashboard := response.Data

	assert.InDelta(suite.T(), 600.0, dashboard.Totals.RecurringBenefits, 0.001)
	assert.InDelta(suite.T(), 500.0, dashboard.Totals.OneOffCosts, 0.001)
	assert.InDelta(suite.T(), 600.0, dashboard.Totals.RecurringImpact, 0.001)

	// ROI: (600 - 500) / 500
	require.NotNil(suite.T(), dashboard.ROI)
	assert.InDelta(suite.T(), 0.2, *dashboard.ROI, 0.001)

	// The grid starts at the earliest planned month
	require.NotEmpty(suite.T(), dashboard.Months)
	assert.Equal(suite.T(), types.NewMonth(2025, 1), dashboard.Months[0].Key)

	// January nets 100 benefit minus the 500 one-off cost
	assert.InDelta(suite.T(), -400.0, dashboard.NetImpact[types.NewMonth(2025, 1)], 0.001)
	assert.InDelta(suite.T(), 100.0, dashboard.NetImpact[types.NewMonth(2025, 4)], 0.001)

	// Six observed months with a net of 100: mean of 100/6, annualized
	assert.InDelta(suite.T(), 200.0, dashboard.RunRate, 0.001)
}

func (suite *TestSuiteStandard) TestDashboardActualView() {
	portfolio := createDashboardFixture(suite.T())

	response := getDashboard(suite.T(), portfolio, "view=actual")
	dashboard := response.Data

	assert.InDelta(suite.T(), 300.0, dashboard.Totals.RecurringBenefits, 0.001)
	assert.InDelta(suite.T(), 500.0, dashboard.Totals.OneOffCosts, 0.001)

	// ROI: (300 - 500) / 500
	require.NotNil(suite.T(), dashboard.ROI)
	assert.InDelta(suite.T(), -0.4, *dashboard.ROI, 0.001)
}

// TestDashboardOneOffToggle verifies that excluding the one-off kinds zeroes
// their totals and makes the ROI undefined.
func (suite *TestSuiteStandard) TestDashboardOneOffToggle() {
	portfolio := createDashboardFixture(suite.T())

	response := getDashboard(suite.T(), portfolio, "oneoff=false")
	dashboard := response.Data

	assert.InDelta(suite.T(), 600.0, dashboard.Totals.RecurringBenefits, 0.001)
	assert.Zero(suite.T(), dashboard.Totals.OneOffCosts)

	// Without a one-off cost there is nothing to divide by
	assert.Nil(suite.T(), dashboard.ROI)

	// January no longer carries the one-off cost
	assert.InDelta(suite.T(), 100.0, dashboard.NetImpact[types.NewMonth(2025, 1)], 0.001)
}

// TestDashboardStageFilter verifies that initiatives outside the stage
// filter do not contribute.
func (suite *TestSuiteStandard) TestDashboardStageFilter() {
	portfolio := createDashboardFixture(suite.T())

	response := getDashboard(suite.T(), portfolio, "stages=idea,draft")
	dashboard := response.Data

	assert.Zero(suite.T(), dashboard.Totals.RecurringBenefits)
	assert.Nil(suite.T(), dashboard.ROI)
	assert.Zero(suite.T(), dashboard.RunRate)
}

func (suite *TestSuiteStandard) TestDashboardWorkstreamFilter() {
	portfolio := createDashboardFixture(suite.T())

	// An empty workstream has nothing to aggregate
	workstream := createTestWorkstream(suite.T(), v1.WorkstreamEditable{PortfolioID: portfolio.Data.ID})

	response := getDashboard(suite.T(), portfolio, fmt.Sprintf("workstream=%s", workstream.Data.ID))
	assert.Zero(suite.T(), response.Data.Totals.RecurringBenefits)
}

func (suite *TestSuiteStandard) TestDashboardInvalidQuery() {
	portfolio := createTestPortfolio(suite.T(), v1.PortfolioEditable{})

	tests := []struct {
		name  string
		query string
	}{
		{"Unknown stage", "stages=prototype"},
		{"Invalid view", "view=forecast"},
		{"Invalid oneoff", "oneoff=maybe"},
		{"Invalid workstream", "workstream=NotAUUID"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("%s?%s", portfolio.Data.Links.Dashboard, tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestDashboardNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/portfolios/%s/dashboard", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
