package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/initiativelab/backend/internal/controllers/v1"
	"github.com/initiativelab/backend/internal/models"
	"github.com/initiativelab/backend/internal/types"
	"github.com/initiativelab/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFinancialEntry(t *testing.T, e v1.FinancialEntryEditable, expectedStatus ...int) v1.FinancialEntryResponse {
	if e.InitiativeID == uuid.Nil {
		e.InitiativeID = createTestInitiative(t, v1.InitiativeEditable{}).Data.ID
	}

	if e.Stage == "" {
		e.Stage = models.StageIdea
	}

	if e.Kind == "" {
		e.Kind = "recurring-benefit"
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.FinancialEntryEditable{e}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/entries", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var entry v1.FinancialEntryCreateResponse
	test.DecodeResponse(t, &r, &entry)

	if r.Code == http.StatusCreated {
		return entry.Data[0]
	}

	return v1.FinancialEntryResponse{}
}

func (suite *TestSuiteStandard) TestFinancialEntriesCreate() {
	e := createTestFinancialEntry(suite.T(), v1.FinancialEntryEditable{
		Stage: models.StageApproved,
		Kind:  "recurring-cost",
		Note:  "License fees",
		Amounts: []v1.AmountEditable{
			{Month: types.NewMonth(2026, 1), Planned: decimal.NewFromInt(100)},
			{Month: types.NewMonth(2026, 2), Planned: decimal.NewFromInt(100)},
		},
	})

	require.Len(suite.T(), e.Data.Amounts, 2)
	assert.True(suite.T(), e.Data.Amounts[0].Planned.Equal(decimal.NewFromInt(100)))
	assert.False(suite.T(), e.Data.Amounts[0].Actual.Valid)
}

func (suite *TestSuiteStandard) TestFinancialEntriesCreateInvalid() {
	initiative := createTestInitiative(suite.T(), v1.InitiativeEditable{})

	tests := []struct {
		name     string
		editable v1.FinancialEntryEditable
		expected string
	}{
		{
			"Invalid kind",
			v1.FinancialEntryEditable{InitiativeID: initiative.Data.ID, Stage: models.StageIdea, Kind: "windfall"},
			models.ErrKindInvalid.Error(),
		},
		{
			"Invalid stage",
			v1.FinancialEntryEditable{InitiativeID: initiative.Data.ID, Stage: "someday", Kind: "recurring-benefit"},
			models.ErrStageInvalid.Error(),
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body := []v1.FinancialEntryEditable{tt.editable}
			r := test.Request(t, http.MethodPost, "http://example.com/v1/entries", body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.FinancialEntryCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Data[0].Error, tt.expected)
		})
	}
}

// TestFinancialEntriesCreateNoInitiative verifies that an entry referencing
// an initiative that does not exist cannot be created.
func (suite *TestSuiteStandard) TestFinancialEntriesCreateNoInitiative() {
	body := []v1.FinancialEntryEditable{{InitiativeID: uuid.New(), Stage: models.StageIdea, Kind: "recurring-benefit"}}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/entries", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestFinancialEntriesDuplicateMonth verifies that one entry cannot have two
// buckets for the same month.
func (suite *TestSuiteStandard) TestFinancialEntriesDuplicateMonth() {
	initiative := createTestInitiative(suite.T(), v1.InitiativeEditable{})

	body := []v1.FinancialEntryEditable{{
		InitiativeID: initiative.Data.ID,
		Stage:        models.StageIdea,
		Kind:         "oneoff-cost",
		Amounts: []v1.AmountEditable{
			{Month: types.NewMonth(2026, 1), Planned: decimal.NewFromInt(100)},
			{Month: types.NewMonth(2026, 1), Planned: decimal.NewFromInt(200)},
		},
	}}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/entries", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestFinancialEntriesGetSingle() {
	e := createTestFinancialEntry(suite.T(), v1.FinancialEntryEditable{
		Amounts: []v1.AmountEditable{
			{Month: types.NewMonth(2026, 3), Planned: decimal.NewFromInt(50)},
		},
	})

	r := test.Request(suite.T(), http.MethodGet, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.FinancialEntryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data.Amounts, 1)
	assert.Equal(suite.T(), types.NewMonth(2026, 3), response.Data.Amounts[0].Month)
}

func (suite *TestSuiteStandard) TestFinancialEntriesListFilter() {
	initiative := createTestInitiative(suite.T(), v1.InitiativeEditable{})

	_ = createTestFinancialEntry(suite.T(), v1.FinancialEntryEditable{InitiativeID: initiative.Data.ID, Stage: models.StageIdea, Kind: "recurring-benefit"})
	_ = createTestFinancialEntry(suite.T(), v1.FinancialEntryEditable{InitiativeID: initiative.Data.ID, Stage: models.StageApproved, Kind: "oneoff-cost"})
	_ = createTestFinancialEntry(suite.T(), v1.FinancialEntryEditable{Stage: models.StageApproved, Kind: "recurring-benefit"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 3},
		{"Initiative", fmt.Sprintf("initiative=%s", initiative.Data.ID), 2},
		{"Stage", "stage=approved", 2},
		{"Kind", "kind=recurring-benefit", 2},
		{"Stage and kind", "stage=approved&kind=oneoff-cost", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/entries?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.FinancialEntryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

// TestFinancialEntriesUpdateReplacesAmounts verifies that updating the
// amounts of an entry replaces the existing month buckets entirely.
func (suite *TestSuiteStandard) TestFinancialEntriesUpdateReplacesAmounts() {
	e := createTestFinancialEntry(suite.T(), v1.FinancialEntryEditable{
		Amounts: []v1.AmountEditable{
			{Month: types.NewMonth(2026, 1), Planned: decimal.NewFromInt(100)},
			{Month: types.NewMonth(2026, 2), Planned: decimal.NewFromInt(100)},
		},
	})

	r := test.Request(suite.T(), http.MethodPatch, e.Data.Links.Self, map[string]any{
		"amounts": []map[string]any{
			{"month": "2026-01", "planned": 250, "actual": 240},
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.FinancialEntryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data.Amounts, 1)
	assert.True(suite.T(), response.Data.Amounts[0].Planned.Equal(decimal.NewFromInt(250)))
	require.True(suite.T(), response.Data.Amounts[0].Actual.Valid)
	assert.True(suite.T(), response.Data.Amounts[0].Actual.Decimal.Equal(decimal.NewFromInt(240)))
}

func (suite *TestSuiteStandard) TestFinancialEntriesUpdateNote() {
	e := createTestFinancialEntry(suite.T(), v1.FinancialEntryEditable{
		Note: "Before",
		Amounts: []v1.AmountEditable{
			{Month: types.NewMonth(2026, 1), Planned: decimal.NewFromInt(100)},
		},
	})

	r := test.Request(suite.T(), http.MethodPatch, e.Data.Links.Self, map[string]any{
		"note": "After",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.FinancialEntryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "After", response.Data.Note)

	// Amounts not in the body stay untouched
	require.Len(suite.T(), response.Data.Amounts, 1)
}

func (suite *TestSuiteStandard) TestFinancialEntriesDelete() {
	e := createTestFinancialEntry(suite.T(), v1.FinancialEntryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
