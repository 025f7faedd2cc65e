package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/initiativelab/backend/internal/httputil"
	"github.com/initiativelab/backend/internal/models"
	"github.com/initiativelab/backend/internal/types"
)

// PortfolioEditable represents all user configurable parameters
type PortfolioEditable struct {
	Name        string      `json:"name" example:"Cost Excellence 2026" default:""`            // Name of the portfolio
	Note        string      `json:"note" example:"All efficiency initiatives" default:""`      // Notes about the portfolio
	FiscalStart uint8       `json:"fiscalStart" example:"4" default:"1"`                       // First month of the fiscal year, 1 is January
	PeriodEnd   types.Month `json:"periodEnd" example:"2027-12" swaggertype:"string" default:""` // Last month of the planning period
}

func (editable PortfolioEditable) model() models.Portfolio {
	return models.Portfolio{
		Name:        editable.Name,
		Note:        editable.Note,
		FiscalStart: editable.FiscalStart,
		PeriodEnd:   editable.PeriodEnd,
	}
}

type PortfolioLinks struct {
	Self        string `json:"self" example:"https://example.com/v1/portfolios/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                  // The portfolio itself
	Workstreams string `json:"workstreams" example:"https://example.com/v1/workstreams?portfolio=550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // Workstreams for this portfolio
	Initiatives string `json:"initiatives" example:"https://example.com/v1/initiatives?portfolio=550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // Initiatives for this portfolio
	Dashboard   string `json:"dashboard" example:"https://example.com/v1/portfolios/550dc009-cea6-4c12-b2a5-03446eb7b7cf/dashboard"`    // The dashboard read model for this portfolio
}

type Portfolio struct {
	models.DefaultModel
	PortfolioEditable
	Links PortfolioLinks `json:"links"`
}

func newPortfolio(c *gin.Context, model models.Portfolio) Portfolio {
	url := httputil.RequestHost(c)

	return Portfolio{
		DefaultModel: model.DefaultModel,
		PortfolioEditable: PortfolioEditable{
			Name:        model.Name,
			Note:        model.Note,
			FiscalStart: model.FiscalStart,
			PeriodEnd:   model.PeriodEnd,
		},
		Links: PortfolioLinks{
			Self:        fmt.Sprintf("%s/v1/portfolios/%s", url, model.ID),
			Workstreams: fmt.Sprintf("%s/v1/workstreams?portfolio=%s", url, model.ID),
			Initiatives: fmt.Sprintf("%s/v1/initiatives?portfolio=%s", url, model.ID),
			Dashboard:   fmt.Sprintf("%s/v1/portfolios/%s/dashboard", url, model.ID),
		},
	}
}

type PortfolioListResponse struct {
	Data       []Portfolio `json:"data"`                                                          // List of Portfolios
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PortfolioCreateResponse struct {
	Data  []PortfolioResponse `json:"data"`                                                          // List of the created Portfolios or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PortfolioCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PortfolioResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PortfolioResponse struct {
	Data  *Portfolio `json:"data"`                                                          // Data for the Portfolio
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PortfolioQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Portfolio returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Portfolios to return. Defaults to 50.
}

func (f PortfolioQueryFilter) model() models.Portfolio {
	return models.Portfolio{}
}
