package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/initiativelab/backend/internal/httputil"
	"github.com/initiativelab/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterPortfolioRoutes registers the routes for Portfolios with
// the RouterGroup that is passed.
func RegisterPortfolioRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPortfolioList)
		r.GET("", GetPortfolios)
		r.POST("", CreatePortfolios)
	}

	// Portfolio with ID
	{
		r.OPTIONS("/:id", OptionsPortfolioDetail)
		r.GET("/:id", GetPortfolio)
		r.PATCH("/:id", UpdatePortfolio)
		r.DELETE("/:id", DeletePortfolio)
	}

	// Dashboard read model
	{
		r.OPTIONS("/:id/dashboard", OptionsDashboard)
		r.GET("/:id/dashboard", GetDashboard)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Portfolios
// @Success		204
// @Router			/v1/portfolios [options]
func OptionsPortfolioList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Portfolios
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/portfolios/{id} [options]
func OptionsPortfolioDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Portfolio{})
}

// @Summary		Create portfolio
// @Description	Creates a new portfolio
// @Tags			Portfolios
// @Accept			json
// @Produce		json
// @Success		201			{object}	PortfolioCreateResponse
// @Failure		400			{object}	PortfolioCreateResponse
// @Failure		500			{object}	PortfolioCreateResponse
// @Param			portfolios	body		[]PortfolioEditable	true	"Portfolios"
// @Router			/v1/portfolios [post]
func CreatePortfolios(c *gin.Context) {
	var portfolios []PortfolioEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &portfolios)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PortfolioCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PortfolioCreateResponse{}

	for _, editable := range portfolios {
		portfolio := editable.model()

		err := models.DB.Create(&portfolio).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newPortfolio(c, portfolio)
		r.Data = append(r.Data, PortfolioResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List portfolios
// @Description	Returns a list of portfolios
// @Tags			Portfolios
// @Produce		json
// @Success		200	{object}	PortfolioListResponse
// @Failure		500	{object}	PortfolioListResponse
// @Router			/v1/portfolios [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first Portfolio returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Portfolios to return. Defaults to 50."
func GetPortfolios(c *gin.Context) {
	var filter PortfolioQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var portfolios []models.Portfolio

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all Portfolios and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&portfolios).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PortfolioListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PortfolioListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Portfolio, 0)
	for _, portfolio := range portfolios {
		apiResources = append(apiResources, newPortfolio(c, portfolio))
	}

	c.JSON(http.StatusOK, PortfolioListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get portfolio
// @Description	Returns a specific portfolio
// @Tags			Portfolios
// @Produce		json
// @Success		200	{object}	PortfolioResponse
// @Failure		400	{object}	PortfolioResponse
// @Failure		404	{object}	PortfolioResponse
// @Failure		500	{object}	PortfolioResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/portfolios/{id} [get]
func GetPortfolio(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PortfolioResponse{
			Error: &s,
		})
		return
	}

	var portfolio models.Portfolio
	err = models.DB.First(&portfolio, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PortfolioResponse{
			Error: &s,
		})
		return
	}

	apiResource := newPortfolio(c, portfolio)
	c.JSON(http.StatusOK, PortfolioResponse{Data: &apiResource})
}

// @Summary		Update portfolio
// @Description	Update an existing portfolio. Only values to be updated need to be specified.
// @Tags			Portfolios
// @Accept			json
// @Produce		json
// @Success		200			{object}	PortfolioResponse
// @Failure		400			{object}	PortfolioResponse
// @Failure		404			{object}	PortfolioResponse
// @Failure		500			{object}	PortfolioResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			portfolio	body		PortfolioEditable	true	"Portfolio"
// @Router			/v1/portfolios/{id} [patch]
func UpdatePortfolio(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PortfolioResponse{
			Error: &s,
		})
		return
	}

	var portfolio models.Portfolio
	err = models.DB.First(&portfolio, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PortfolioResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PortfolioEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PortfolioResponse{
			Error: &s,
		})
		return
	}

	var data PortfolioEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PortfolioResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&portfolio).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PortfolioResponse{
			Error: &s,
		})
		return
	}

	apiResource := newPortfolio(c, portfolio)
	c.JSON(http.StatusOK, PortfolioResponse{Data: &apiResource})
}

// @Summary		Delete portfolio
// @Description	Deletes a portfolio
// @Tags			Portfolios
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/portfolios/{id} [delete]
func DeletePortfolio(c *gin.Context) {
	deleteResource[models.Portfolio](c)
}
