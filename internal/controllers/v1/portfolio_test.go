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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPortfolio(t *testing.T, p v1.PortfolioEditable, expectedStatus ...int) v1.PortfolioResponse {
	if p.Name == "" {
		p.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.PortfolioEditable{p}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/portfolios", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var portfolio v1.PortfolioCreateResponse
	test.DecodeResponse(t, &r, &portfolio)

	if r.Code == http.StatusCreated {
		return portfolio.Data[0]
	}

	return v1.PortfolioResponse{}
}

// TestPortfoliosDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestPortfoliosDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestPortfolio(t, v1.PortfolioEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/portfolios", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.PortfolioListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestPortfoliosOptions verifies that the HTTP OPTIONS response for
// portfolios is correct.
func (suite *TestSuiteStandard) TestPortfoliosOptions() {
	tests := []struct {
		name     string
		id       string // path at the /portfolios endpoint to test
		status   int    // expected HTTP status
		isUUID   bool   // if true, the id is created via a portfolio
		expected string // expected allow header
	}{
		{"Root", "", http.StatusNoContent, false, "GET, POST"},
		{"Does not exist", uuid.New().String(), http.StatusNotFound, false, ""},
		{"Invalid UUID", "NotParseableAsUUID", http.StatusBadRequest, false, ""},
		{"Existing", "", http.StatusNoContent, true, "GET, PATCH, DELETE"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			id := tt.id
			if tt.isUUID {
				id = createTestPortfolio(t, v1.PortfolioEditable{}).Data.ID.String()
			}

			path := fmt.Sprintf("http://example.com/v1/portfolios/%s", id)
			if id == "" {
				path = "http://example.com/v1/portfolios"
			}

			r := test.Request(t, http.MethodOptions, path, "")
			assert.Equal(t, tt.status, r.Code)

			if tt.expected != "" {
				assert.Equal(t, tt.expected, r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestPortfoliosCreate() {
	_ = createTestPortfolio(suite.T(), v1.PortfolioEditable{
		Name:        "Cost program",
		Note:        "All cost initiatives for this year",
		FiscalStart: 4,
		PeriodEnd:   types.NewMonth(2027, 12),
	})
}

// TestPortfoliosCreateDefaults verifies that an empty fiscal start is
// normalized to January.
func (suite *TestSuiteStandard) TestPortfoliosCreateDefaults() {
	p := createTestPortfolio(suite.T(), v1.PortfolioEditable{Name: "Defaults"})

	assert.Equal(suite.T(), uint8(1), p.Data.FiscalStart)
	assert.True(suite.T(), p.Data.PeriodEnd.IsZero())
}

func (suite *TestSuiteStandard) TestPortfoliosCreateInvalid() {
	tests := []struct {
		name     string
		editable v1.PortfolioEditable
		expected string
	}{
		{"Fiscal start too large", v1.PortfolioEditable{FiscalStart: 13}, models.ErrFiscalStartInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body := []v1.PortfolioEditable{tt.editable}
			r := test.Request(t, http.MethodPost, "http://example.com/v1/portfolios", body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.PortfolioCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Data[0].Error, tt.expected)
		})
	}
}

// TestPortfoliosCreateInvalidBody verifies that an unparseable body returns
// an HTTP 400.
func (suite *TestSuiteStandard) TestPortfoliosCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/portfolios", `{ Invalid request": Body }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.PortfolioCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.NotNil(suite.T(), response.Error)
}

func (suite *TestSuiteStandard) TestPortfoliosGetSingle() {
	p := createTestPortfolio(suite.T(), v1.PortfolioEditable{Name: "Single"})

	r := test.Request(suite.T(), http.MethodGet, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PortfolioResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Single", response.Data.Name)
}

func (suite *TestSuiteStandard) TestPortfoliosGetNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/portfolios/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPortfoliosList() {
	for _, name := range []string{"Alpha", "Beta"} {
		_ = createTestPortfolio(suite.T(), v1.PortfolioEditable{Name: name})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/portfolios", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PortfolioListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)

	// Sorted by name
	assert.Equal(suite.T(), "Alpha", response.Data[0].Name)
	assert.Equal(suite.T(), "Beta", response.Data[1].Name)

	assert.Equal(suite.T(), 2, response.Pagination.Count)
	assert.Equal(suite.T(), int64(2), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestPortfoliosListFilter() {
	_ = createTestPortfolio(suite.T(), v1.PortfolioEditable{Name: "Growth", Note: "Revenue initiatives"})
	_ = createTestPortfolio(suite.T(), v1.PortfolioEditable{Name: "Efficiency", Note: "Cost initiatives"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"Name", "name=Growth", 1},
		{"Name substring", "name=Gro", 1},
		{"Note", "note=initiatives", 2},
		{"Search", "search=cost", 1},
		{"No match", "name=DoesNotExist", 0},
		{"Limit", "limit=1", 1},
		{"Offset", "offset=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/portfolios?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.PortfolioListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestPortfoliosUpdate() {
	p := createTestPortfolio(suite.T(), v1.PortfolioEditable{Name: "Before", FiscalStart: 4})

	r := test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, map[string]any{
		"name": "After",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PortfolioResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "After", response.Data.Name)

	// Fields not in the body stay untouched
	assert.Equal(suite.T(), uint8(4), response.Data.FiscalStart)
}

func (suite *TestSuiteStandard) TestPortfoliosUpdateInvalid() {
	p := createTestPortfolio(suite.T(), v1.PortfolioEditable{})

	r := test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, map[string]any{
		"fiscalStart": 17,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPortfoliosDelete() {
	p := createTestPortfolio(suite.T(), v1.PortfolioEditable{})

	r := test.Request(suite.T(), http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPortfoliosDeleteNotFound() {
	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/portfolios/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
