package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/initiativelab/backend/internal/httputil"
	"github.com/initiativelab/backend/internal/models"
	"github.com/initiativelab/backend/internal/rollup"
	il_uuid "github.com/initiativelab/backend/internal/uuid"
)

// InitiativeEditable represents all user configurable parameters
type InitiativeEditable struct {
	Name         string       `json:"name" example:"Consolidate logistics providers" default:""` // Name of the initiative
	PortfolioID  uuid.UUID    `json:"portfolioId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the portfolio the initiative belongs to
	WorkstreamID *uuid.UUID   `json:"workstreamId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the workstream, if any
	Note         string       `json:"note" example:"Target completion in Q3" default:""`          // Notes about the initiative
	ActiveStage  rollup.Stage `json:"activeStage" example:"approved" default:"idea"`              // Current stage of the initiative
	Archived     bool         `json:"archived" example:"true" default:"false"`                    // Is the initiative archived?
}

func (editable InitiativeEditable) model() models.Initiative {
	return models.Initiative{
		PortfolioID:  editable.PortfolioID,
		WorkstreamID: editable.WorkstreamID,
		Name:         editable.Name,
		Note:         editable.Note,
		ActiveStage:  editable.ActiveStage,
		Archived:     editable.Archived,
	}
}

type InitiativeLinks struct {
	Self    string `json:"self" example:"https://example.com/v1/initiatives/d1b4ca66-2082-4ea4-9ab9-59ba0f5a1221"`              // The initiative itself
	Entries string `json:"entries" example:"https://example.com/v1/entries?initiative=d1b4ca66-2082-4ea4-9ab9-59ba0f5a1221"` // Financial entries for this initiative
}

type Initiative struct {
	models.DefaultModel
	InitiativeEditable
	Links InitiativeLinks `json:"links"`
}

func newInitiative(c *gin.Context, model models.Initiative) Initiative {
	url := httputil.RequestHost(c)

	return Initiative{
		DefaultModel: model.DefaultModel,
		InitiativeEditable: InitiativeEditable{
			PortfolioID:  model.PortfolioID,
			WorkstreamID: model.WorkstreamID,
			Name:         model.Name,
			Note:         model.Note,
			ActiveStage:  model.ActiveStage,
			Archived:     model.Archived,
		},
		Links: InitiativeLinks{
			Self:    fmt.Sprintf("%s/v1/initiatives/%s", url, model.ID),
			Entries: fmt.Sprintf("%s/v1/entries?initiative=%s", url, model.ID),
		},
	}
}

type InitiativeListResponse struct {
	Data       []Initiative `json:"data"`                                                          // List of Initiatives
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type InitiativeCreateResponse struct {
	Data  []InitiativeResponse `json:"data"`                                                          // List of the created Initiatives or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (i *InitiativeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	i.Data = append(i.Data, InitiativeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type InitiativeResponse struct {
	Data  *Initiative `json:"data"`                                                          // Data for the Initiative
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type InitiativeQueryFilter struct {
	PortfolioID  il_uuid.UUID `form:"portfolio"`                  // By ID of the Portfolio
	WorkstreamID il_uuid.UUID `form:"workstream"`                 // By ID of the Workstream
	ActiveStage  string       `form:"stage"`                      // By current stage
	Name         string       `form:"name" filterField:"false"`   // By name
	Note         string       `form:"note" filterField:"false"`   // By note
	Archived     bool         `form:"archived"`                   // Is the Initiative archived?
	Search       string       `form:"search" filterField:"false"` // By string in name or note
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first Initiative returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of Initiatives to return. Defaults to 50.
}

func (f InitiativeQueryFilter) model() models.Initiative {
	initiative := models.Initiative{
		PortfolioID: f.PortfolioID.UUID,
		ActiveStage: rollup.Stage(f.ActiveStage),
		Archived:    f.Archived,
	}

	if f.WorkstreamID != il_uuid.Nil {
		id := f.WorkstreamID.UUID
		initiative.WorkstreamID = &id
	}

	return initiative
}
