package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/initiativelab/backend/internal/httputil"
	"github.com/initiativelab/backend/internal/models"
	"github.com/initiativelab/backend/internal/rollup"
	"github.com/initiativelab/backend/internal/types"
	il_uuid "github.com/initiativelab/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// AmountEditable represents one month bucket of a financial entry
type AmountEditable struct {
	Month   types.Month         `json:"month" example:"2026-03" swaggertype:"string"`                          // Month the amount applies to
	Planned decimal.Decimal     `json:"planned" example:"1500.00"`                                             // Planned amount for the month
	Actual  decimal.NullDecimal `json:"actual" example:"1383.12" extensions:"x-nullable" swaggertype:"number"` // Recorded amount, null until one is recorded
}

func (editable AmountEditable) model() models.FinancialAmount {
	return models.FinancialAmount{
		Month:   editable.Month,
		Planned: editable.Planned,
		Actual:  editable.Actual,
	}
}

// FinancialEntryEditable represents all user configurable parameters
type FinancialEntryEditable struct {
	InitiativeID uuid.UUID        `json:"initiativeId" example:"d1b4ca66-2082-4ea4-9ab9-59ba0f5a1221"` // ID of the initiative the entry belongs to
	Stage        rollup.Stage     `json:"stage" example:"approved"`                                    // Stage the entry is planned for
	Kind         rollup.Kind      `json:"kind" example:"recurring-benefit"`                            // Kind of the entry
	Note         string           `json:"note" example:"Net savings after carrier switch" default:""`  // Notes about the entry
	Amounts      []AmountEditable `json:"amounts"`                                                     // Month buckets for the entry
}

func (editable FinancialEntryEditable) model() models.FinancialEntry {
	amounts := make([]models.FinancialAmount, 0, len(editable.Amounts))
	for _, amount := range editable.Amounts {
		amounts = append(amounts, amount.model())
	}

	return models.FinancialEntry{
		InitiativeID: editable.InitiativeID,
		Stage:        editable.Stage,
		Kind:         editable.Kind,
		Note:         editable.Note,
		Amounts:      amounts,
	}
}

type FinancialEntryLinks struct {
	Self string `json:"self" example:"https://example.com/v1/entries/a3f2e6b0-9d55-42a3-8fa0-4e9d5a0a44cf"` // The financial entry itself
}

type FinancialEntry struct {
	models.DefaultModel
	FinancialEntryEditable
	Links FinancialEntryLinks `json:"links"`
}

func newFinancialEntry(c *gin.Context, model models.FinancialEntry) FinancialEntry {
	url := httputil.RequestHost(c)

	amounts := make([]AmountEditable, 0, len(model.Amounts))
	for _, amount := range model.Amounts {
		amounts = append(amounts, AmountEditable{
			Month:   amount.Month,
			Planned: amount.Planned,
			Actual:  amount.Actual,
		})
	}

	return FinancialEntry{
		DefaultModel: model.DefaultModel,
		FinancialEntryEditable: FinancialEntryEditable{
			InitiativeID: model.InitiativeID,
			Stage:        model.Stage,
			Kind:         model.Kind,
			Note:         model.Note,
			Amounts:      amounts,
		},
		Links: FinancialEntryLinks{
			Self: fmt.Sprintf("%s/v1/entries/%s", url, model.ID),
		},
	}
}

type FinancialEntryListResponse struct {
	Data       []FinancialEntry `json:"data"`                                                          // List of Financial Entries
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type FinancialEntryCreateResponse struct {
	Data  []FinancialEntryResponse `json:"data"`                                                          // List of the created Financial Entries or their respective error
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (f *FinancialEntryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	f.Data = append(f.Data, FinancialEntryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type FinancialEntryResponse struct {
	Data  *FinancialEntry `json:"data"`                                                          // Data for the Financial Entry
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FinancialEntryQueryFilter struct {
	InitiativeID il_uuid.UUID `form:"initiative"`                 // By ID of the Initiative
	Stage        string       `form:"stage"`                      // By stage
	Kind         string       `form:"kind"`                       // By kind
	Note         string       `form:"note" filterField:"false"`   // By note
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first Financial Entry returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of Financial Entries to return. Defaults to 50.
}

func (f FinancialEntryQueryFilter) model() models.FinancialEntry {
	return models.FinancialEntry{
		InitiativeID: f.InitiativeID.UUID,
		Stage:        rollup.Stage(f.Stage),
		Kind:         rollup.Kind(f.Kind),
	}
}
