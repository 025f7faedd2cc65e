package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/initiativelab/backend/internal/httputil"
	"github.com/initiativelab/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterInitiativeRoutes registers the routes for Initiatives with
// the RouterGroup that is passed.
func RegisterInitiativeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsInitiativeList)
		r.GET("", GetInitiatives)
		r.POST("", CreateInitiatives)
	}

	// Initiative with ID
	{
		r.OPTIONS("/:id", OptionsInitiativeDetail)
		r.GET("/:id", GetInitiative)
		r.PATCH("/:id", UpdateInitiative)
		r.DELETE("/:id", DeleteInitiative)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Initiatives
// @Success		204
// @Router			/v1/initiatives [options]
func OptionsInitiativeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Initiatives
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/initiatives/{id} [options]
func OptionsInitiativeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Initiative{})
}

// @Summary		Create initiative
// @Description	Creates a new initiative
// @Tags			Initiatives
// @Accept			json
// @Produce		json
// @Success		201			{object}	InitiativeCreateResponse
// @Failure		400			{object}	InitiativeCreateResponse
// @Failure		404			{object}	InitiativeCreateResponse
// @Failure		500			{object}	InitiativeCreateResponse
// @Param			initiatives	body		[]InitiativeEditable	true	"Initiatives"
// @Router			/v1/initiatives [post]
func CreateInitiatives(c *gin.Context) {
	var initiatives []InitiativeEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &initiatives)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InitiativeCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := InitiativeCreateResponse{}

	for _, editable := range initiatives {
		initiative := editable.model()

		err := models.DB.Create(&initiative).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newInitiative(c, initiative)
		r.Data = append(r.Data, InitiativeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List initiatives
// @Description	Returns a list of initiatives
// @Tags			Initiatives
// @Produce		json
// @Success		200	{object}	InitiativeListResponse
// @Failure		400	{object}	InitiativeListResponse
// @Failure		500	{object}	InitiativeListResponse
// @Router			/v1/initiatives [get]
// @Param			portfolio	query	string	false	"Filter by portfolio ID"
// @Param			workstream	query	string	false	"Filter by workstream ID"
// @Param			stage		query	string	false	"Filter by current stage"
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the initiative archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Initiative returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Initiatives to return. Defaults to 50."
func GetInitiatives(c *gin.Context) {
	var filter InitiativeQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var initiatives []models.Initiative

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all Initiatives and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&initiatives).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InitiativeListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InitiativeListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Initiative, 0)
	for _, initiative := range initiatives {
		apiResources = append(apiResources, newInitiative(c, initiative))
	}

	c.JSON(http.StatusOK, InitiativeListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get initiative
// @Description	Returns a specific initiative
// @Tags			Initiatives
// @Produce		json
// @Success		200	{object}	InitiativeResponse
// @Failure		400	{object}	InitiativeResponse
// @Failure		404	{object}	InitiativeResponse
// @Failure		500	{object}	InitiativeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/initiatives/{id} [get]
func GetInitiative(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InitiativeResponse{
			Error: &s,
		})
		return
	}

	var initiative models.Initiative
	err = models.DB.First(&initiative, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InitiativeResponse{
			Error: &s,
		})
		return
	}

	apiResource := newInitiative(c, initiative)
	c.JSON(http.StatusOK, InitiativeResponse{Data: &apiResource})
}

// @Summary		Update initiative
// @Description	Update an existing initiative. Only values to be updated need to be specified.
// @Tags			Initiatives
// @Accept			json
// @Produce		json
// @Success		200			{object}	InitiativeResponse
// @Failure		400			{object}	InitiativeResponse
// @Failure		404			{object}	InitiativeResponse
// @Failure		500			{object}	InitiativeResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			initiative	body		InitiativeEditable	true	"Initiative"
// @Router			/v1/initiatives/{id} [patch]
func UpdateInitiative(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InitiativeResponse{
			Error: &s,
		})
		return
	}

	var initiative models.Initiative
	err = models.DB.First(&initiative, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InitiativeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, InitiativeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InitiativeResponse{
			Error: &s,
		})
		return
	}

	var data InitiativeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InitiativeResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&initiative).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InitiativeResponse{
			Error: &s,
		})
		return
	}

	apiResource := newInitiative(c, initiative)
	c.JSON(http.StatusOK, InitiativeResponse{Data: &apiResource})
}

// @Summary		Delete initiative
// @Description	Deletes an initiative
// @Tags			Initiatives
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/initiatives/{id} [delete]
func DeleteInitiative(c *gin.Context) {
	deleteResource[models.Initiative](c)
}
