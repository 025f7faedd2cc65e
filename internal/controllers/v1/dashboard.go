package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/initiativelab/backend/internal/httputil"
	"github.com/initiativelab/backend/internal/models"
	"github.com/initiativelab/backend/internal/reports"
	"github.com/initiativelab/backend/internal/rollup"
)

type DashboardResponse struct {
	Data  *reports.Dashboard `json:"data"`                                                          // The dashboard read model
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DashboardQuery struct {
	Stages     string `form:"stages"`     // Comma-separated stage keys, empty means all stages
	OneOff     string `form:"oneoff"`     // Include one-off kinds, defaults to true
	Workstream string `form:"workstream"` // Only aggregate initiatives of this workstream
	View       string `form:"view"`       // "plan" or "actual", defaults to "plan"
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Portfolios
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/portfolios/{id}/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var portfolio models.Portfolio
	err = models.DB.First(&portfolio, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Portfolio dashboard
// @Description	Returns the dashboard read model for a portfolio: the month grid, chart stacks, net impact series, totals, ROI, run rate and year summaries
// @Tags			Portfolios
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		400	{object}	DashboardResponse
// @Failure		404	{object}	DashboardResponse
// @Failure		500	{object}	DashboardResponse
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			stages		query	string	false	"Comma-separated stage keys. Defaults to all stages."
// @Param			oneoff		query	bool	false	"Include one-off kinds. Defaults to true."
// @Param			workstream	query	string	false	"Only aggregate initiatives of this workstream"
// @Param			view		query	string	false	"Aggregate 'plan' or 'actual' amounts. Defaults to 'plan'."
// @Router			/v1/portfolios/{id}/dashboard [get]
func GetDashboard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	var portfolio models.Portfolio
	err = models.DB.First(&portfolio, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	var query DashboardQuery
	_ = c.Bind(&query)

	opts, err := dashboardOptions(query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	dashboard, err := reports.Build(portfolio, time.Now(), opts)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &dashboard})
}

// dashboardOptions validates the query parameters and converts them into
// build options.
func dashboardOptions(query DashboardQuery) (reports.Options, error) {
	opts := reports.DefaultOptions()

	if query.Stages != "" {
		var stages []rollup.Stage
		for _, raw := range strings.Split(query.Stages, ",") {
			stage := rollup.Stage(strings.TrimSpace(raw))
			if !models.StageValid(stage) {
				return reports.Options{}, errStageUnknown
			}

			stages = append(stages, stage)
		}

		opts.Stages = rollup.NewStageSet(stages...)
	}

	if query.OneOff != "" {
		oneOff, err := strconv.ParseBool(query.OneOff)
		if err != nil {
			return reports.Options{}, err
		}

		opts.IncludeOneOff = oneOff
	}

	if query.Workstream != "" {
		id, err := httputil.UUIDFromString(query.Workstream)
		if err != nil {
			return reports.Options{}, err
		}

		opts.Workstream = &id
	}

	if query.View != "" {
		view := reports.View(query.View)
		if !view.Valid() {
			return reports.Options{}, errViewInvalid
		}

		opts.View = view
	}

	return opts, nil
}
