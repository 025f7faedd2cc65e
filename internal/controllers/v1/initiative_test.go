package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/initiativelab/backend/internal/controllers/v1"
	"github.com/initiativelab/backend/internal/models"
	"github.com/initiativelab/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestInitiative(t *testing.T, i v1.InitiativeEditable, expectedStatus ...int) v1.InitiativeResponse {
	if i.PortfolioID == uuid.Nil {
		i.PortfolioID = createTestPortfolio(t, v1.PortfolioEditable{Name: "Testing portfolio"}).Data.ID
	}

	if i.Name == "" {
		i.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.InitiativeEditable{i}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/initiatives", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var initiative v1.InitiativeCreateResponse
	test.DecodeResponse(t, &r, &initiative)

	if r.Code == http.StatusCreated {
		return initiative.Data[0]
	}

	return v1.InitiativeResponse{}
}

func (suite *TestSuiteStandard) TestInitiativesCreate() {
	i := createTestInitiative(suite.T(), v1.InitiativeEditable{
		Name:        "Carrier consolidation",
		ActiveStage: models.StageApproved,
	})

	assert.Equal(suite.T(), models.StageApproved, i.Data.ActiveStage)
	assert.Nil(suite.T(), i.Data.WorkstreamID)
}

// TestInitiativesCreateDefaultStage verifies that an initiative without a
// stage starts out as an idea.
func (suite *TestSuiteStandard) TestInitiativesCreateDefaultStage() {
	i := createTestInitiative(suite.T(), v1.InitiativeEditable{})

	assert.Equal(suite.T(), models.StageIdea, i.Data.ActiveStage)
}

func (suite *TestSuiteStandard) TestInitiativesCreateInvalidStage() {
	p := createTestPortfolio(suite.T(), v1.PortfolioEditable{})

	body := []v1.InitiativeEditable{{PortfolioID: p.Data.ID, Name: "Bad stage", ActiveStage: "prototype"}}
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/initiatives", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.InitiativeCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), *response.Data[0].Error, models.ErrStageInvalid.Error())
}

func (suite *TestSuiteStandard) TestInitiativesCreateWithWorkstream() {
	p := createTestPortfolio(suite.T(), v1.PortfolioEditable{})
	w := createTestWorkstream(suite.T(), v1.WorkstreamEditable{PortfolioID: p.Data.ID})

	i := createTestInitiative(suite.T(), v1.InitiativeEditable{
		PortfolioID:  p.Data.ID,
		WorkstreamID: &w.Data.ID,
	})

	assert.Equal(suite.T(), w.Data.ID, *i.Data.WorkstreamID)
}

// TestInitiativesWorkstreamPortfolioMixed verifies that an initiative cannot
// reference a workstream of another portfolio.
func (suite *TestSuiteStandard) TestInitiativesWorkstreamPortfolioMixed() {
	p := createTestPortfolio(suite.T(), v1.PortfolioEditable{})
	other := createTestWorkstream(suite.T(), v1.WorkstreamEditable{})

	body := []v1.InitiativeEditable{{PortfolioID: p.Data.ID, Name: "Mixed", WorkstreamID: &other.Data.ID}}
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/initiatives", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.InitiativeCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), *response.Data[0].Error, models.ErrWorkstreamPortfolioMixed.Error())
}

func (suite *TestSuiteStandard) TestInitiativesListFilter() {
	p := createTestPortfolio(suite.T(), v1.PortfolioEditable{})
	w := createTestWorkstream(suite.T(), v1.WorkstreamEditable{PortfolioID: p.Data.ID})

	_ = createTestInitiative(suite.T(), v1.InitiativeEditable{PortfolioID: p.Data.ID, WorkstreamID: &w.Data.ID, ActiveStage: models.StageExecuting})
	_ = createTestInitiative(suite.T(), v1.InitiativeEditable{PortfolioID: p.Data.ID, ActiveStage: models.StageIdea})
	_ = createTestInitiative(suite.T(), v1.InitiativeEditable{ActiveStage: models.StageExecuting, Archived: true})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 3},
		{"Portfolio", fmt.Sprintf("portfolio=%s", p.Data.ID), 2},
		{"Workstream", fmt.Sprintf("workstream=%s", w.Data.ID), 1},
		{"Stage", "stage=executing", 2},
		{"Stage and portfolio", fmt.Sprintf("stage=executing&portfolio=%s", p.Data.ID), 1},
		{"Archived", "archived=true", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/initiatives?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.InitiativeListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestInitiativesUpdateStage() {
	i := createTestInitiative(suite.T(), v1.InitiativeEditable{ActiveStage: models.StageDraft})

	r := test.Request(suite.T(), http.MethodPatch, i.Data.Links.Self, map[string]any{
		"activeStage": "approved",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InitiativeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.StageApproved, response.Data.ActiveStage)
}

func (suite *TestSuiteStandard) TestInitiativesUpdateInvalidStage() {
	i := createTestInitiative(suite.T(), v1.InitiativeEditable{})

	r := test.Request(suite.T(), http.MethodPatch, i.Data.Links.Self, map[string]any{
		"activeStage": "unknown-stage",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestInitiativesDelete() {
	i := createTestInitiative(suite.T(), v1.InitiativeEditable{})

	r := test.Request(suite.T(), http.MethodDelete, i.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, i.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
