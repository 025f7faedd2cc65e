package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/initiativelab/backend/internal/httputil"
	"github.com/initiativelab/backend/internal/models"
	il_uuid "github.com/initiativelab/backend/internal/uuid"
)

// WorkstreamEditable represents all user configurable parameters
type WorkstreamEditable struct {
	Name        string    `json:"name" example:"Procurement" default:""`                         // Name of the workstream
	PortfolioID uuid.UUID `json:"portfolioId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`    // ID of the portfolio the workstream belongs to
	Note        string    `json:"note" example:"All supplier-facing initiatives" default:""`     // Notes about the workstream
	Archived    bool      `json:"archived" example:"true" default:"false"`                       // Is the workstream archived?
}

func (editable WorkstreamEditable) model() models.Workstream {
	return models.Workstream{
		PortfolioID: editable.PortfolioID,
		Name:        editable.Name,
		Note:        editable.Note,
		Archived:    editable.Archived,
	}
}

type WorkstreamLinks struct {
	Self        string `json:"self" example:"https://example.com/v1/workstreams/3b1ea324-d438-4419-882a-2fc91d71772f"`                  // The workstream itself
	Initiatives string `json:"initiatives" example:"https://example.com/v1/initiatives?workstream=3b1ea324-d438-4419-882a-2fc91d71772f"` // Initiatives for this workstream
}

type Workstream struct {
	models.DefaultModel
	WorkstreamEditable
	Links WorkstreamLinks `json:"links"`
}

func newWorkstream(c *gin.Context, model models.Workstream) Workstream {
	url := httputil.RequestHost(c)

	return Workstream{
		DefaultModel: model.DefaultModel,
		WorkstreamEditable: WorkstreamEditable{
			PortfolioID: model.PortfolioID,
			Name:        model.Name,
			Note:        model.Note,
			Archived:    model.Archived,
		},
		Links: WorkstreamLinks{
			Self:        fmt.Sprintf("%s/v1/workstreams/%s", url, model.ID),
			Initiatives: fmt.Sprintf("%s/v1/initiatives?workstream=%s", url, model.ID),
		},
	}
}

type WorkstreamListResponse struct {
	Data       []Workstream `json:"data"`                                                          // List of Workstreams
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type WorkstreamCreateResponse struct {
	Data  []WorkstreamResponse `json:"data"`                                                          // List of the created Workstreams or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (w *WorkstreamCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	w.Data = append(w.Data, WorkstreamResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type WorkstreamResponse struct {
	Data  *Workstream `json:"data"`                                                          // Data for the Workstream
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type WorkstreamQueryFilter struct {
	PortfolioID il_uuid.UUID `form:"portfolio"`                  // By ID of the Portfolio
	Name        string       `form:"name" filterField:"false"`   // By name
	Note        string       `form:"note" filterField:"false"`   // By note
	Archived    bool         `form:"archived"`                   // Is the Workstream archived?
	Search      string       `form:"search" filterField:"false"` // By string in name or note
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first Workstream returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of Workstreams to return. Defaults to 50.
}

func (f WorkstreamQueryFilter) model() models.Workstream {
	return models.Workstream{
		PortfolioID: f.PortfolioID.UUID,
		Archived:    f.Archived,
	}
}
