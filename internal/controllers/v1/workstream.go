package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/initiativelab/backend/internal/httputil"
	"github.com/initiativelab/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterWorkstreamRoutes registers the routes for Workstreams with
// the RouterGroup that is passed.
func RegisterWorkstreamRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsWorkstreamList)
		r.GET("", GetWorkstreams)
		r.POST("", CreateWorkstreams)
	}

	// Workstream with ID
	{
		r.OPTIONS("/:id", OptionsWorkstreamDetail)
		r.GET("/:id", GetWorkstream)
		r.PATCH("/:id", UpdateWorkstream)
		r.DELETE("/:id", DeleteWorkstream)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Workstreams
// @Success		204
// @Router			/v1/workstreams [options]
func OptionsWorkstreamList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Workstreams
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/workstreams/{id} [options]
func OptionsWorkstreamDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Workstream{})
}

// @Summary		Create workstream
// @Description	Creates a new workstream
// @Tags			Workstreams
// @Accept			json
// @Produce		json
// @Success		201			{object}	WorkstreamCreateResponse
// @Failure		400			{object}	WorkstreamCreateResponse
// @Failure		404			{object}	WorkstreamCreateResponse
// @Failure		500			{object}	WorkstreamCreateResponse
// @Param			workstreams	body		[]WorkstreamEditable	true	"Workstreams"
// @Router			/v1/workstreams [post]
func CreateWorkstreams(c *gin.Context) {
	var workstreams []WorkstreamEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &workstreams)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WorkstreamCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := WorkstreamCreateResponse{}

	for _, editable := range workstreams {
		workstream := editable.model()

		err := models.DB.Create(&workstream).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newWorkstream(c, workstream)
		r.Data = append(r.Data, WorkstreamResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List workstreams
// @Description	Returns a list of workstreams
// @Tags			Workstreams
// @Produce		json
// @Success		200	{object}	WorkstreamListResponse
// @Failure		400	{object}	WorkstreamListResponse
// @Failure		500	{object}	WorkstreamListResponse
// @Router			/v1/workstreams [get]
// @Param			portfolio	query	string	false	"Filter by portfolio ID"
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the workstream archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Workstream returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Workstreams to return. Defaults to 50."
func GetWorkstreams(c *gin.Context) {
	var filter WorkstreamQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var workstreams []models.Workstream

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all Workstreams and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&workstreams).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WorkstreamListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WorkstreamListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Workstream, 0)
	for _, workstream := range workstreams {
		apiResources = append(apiResources, newWorkstream(c, workstream))
	}

	c.JSON(http.StatusOK, WorkstreamListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get workstream
// @Description	Returns a specific workstream
// @Tags			Workstreams
// @Produce		json
// @Success		200	{object}	WorkstreamResponse
// @Failure		400	{object}	WorkstreamResponse
// @Failure		404	{object}	WorkstreamResponse
// @Failure		500	{object}	WorkstreamResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/workstreams/{id} [get]
func GetWorkstream(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WorkstreamResponse{
			Error: &s,
		})
		return
	}

	var workstream models.Workstream
	err = models.DB.First(&workstream, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WorkstreamResponse{
			Error: &s,
		})
		return
	}

	apiResource := newWorkstream(c, workstream)
	c.JSON(http.StatusOK, WorkstreamResponse{Data: &apiResource})
}

// @Summary		Update workstream
// @Description	Update an existing workstream. Only values to be updated need to be specified.
// @Tags			Workstreams
// @Accept			json
// @Produce		json
// @Success		200			{object}	WorkstreamResponse
// @Failure		400			{object}	WorkstreamResponse
// @Failure		404			{object}	WorkstreamResponse
// @Failure		500			{object}	WorkstreamResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			workstream	body		WorkstreamEditable	true	"Workstream"
// @Router			/v1/workstreams/{id} [patch]
func UpdateWorkstream(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WorkstreamResponse{
			Error: &s,
		})
		return
	}

	var workstream models.Workstream
	err = models.DB.First(&workstream, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WorkstreamResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, WorkstreamEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WorkstreamResponse{
			Error: &s,
		})
		return
	}

	var data WorkstreamEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WorkstreamResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&workstream).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WorkstreamResponse{
			Error: &s,
		})
		return
	}

	apiResource := newWorkstream(c, workstream)
	c.JSON(http.StatusOK, WorkstreamResponse{Data: &apiResource})
}

// @Summary		Delete workstream
// @Description	Deletes a workstream
// @Tags			Workstreams
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/workstreams/{id} [delete]
func DeleteWorkstream(c *gin.Context) {
	deleteResource[models.Workstream](c)
}
