package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/initiativelab/backend/internal/httputil"
	"github.com/initiativelab/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterFinancialEntryRoutes registers the routes for Financial Entries with
// the RouterGroup that is passed.
func RegisterFinancialEntryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFinancialEntryList)
		r.GET("", GetFinancialEntries)
		r.POST("", CreateFinancialEntries)
	}

	// Financial Entry with ID
	{
		r.OPTIONS("/:id", OptionsFinancialEntryDetail)
		r.GET("/:id", GetFinancialEntry)
		r.PATCH("/:id", UpdateFinancialEntry)
		r.DELETE("/:id", DeleteFinancialEntry)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FinancialEntries
// @Success		204
// @Router			/v1/entries [options]
func OptionsFinancialEntryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FinancialEntries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/entries/{id} [options]
func OptionsFinancialEntryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.FinancialEntry{})
}

// @Summary		Create financial entry
// @Description	Creates a new financial entry with its month buckets
// @Tags			FinancialEntries
// @Accept			json
// @Produce		json
// @Success		201		{object}	FinancialEntryCreateResponse
// @Failure		400		{object}	FinancialEntryCreateResponse
// @Failure		404		{object}	FinancialEntryCreateResponse
// @Failure		500		{object}	FinancialEntryCreateResponse
// @Param			entries	body		[]FinancialEntryEditable	true	"Financial Entries"
// @Router			/v1/entries [post]
func CreateFinancialEntries(c *gin.Context) {
	var entries []FinancialEntryEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &entries)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialEntryCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := FinancialEntryCreateResponse{}

	for _, editable := range entries {
		entry := editable.model()

		err := models.DB.Create(&entry).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newFinancialEntry(c, entry)
		r.Data = append(r.Data, FinancialEntryResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List financial entries
// @Description	Returns a list of financial entries
// @Tags			FinancialEntries
// @Produce		json
// @Success		200	{object}	FinancialEntryListResponse
// @Failure		400	{object}	FinancialEntryListResponse
// @Failure		500	{object}	FinancialEntryListResponse
// @Router			/v1/entries [get]
// @Param			initiative	query	string	false	"Filter by initiative ID"
// @Param			stage		query	string	false	"Filter by stage"
// @Param			kind		query	string	false	"Filter by kind"
// @Param			note		query	string	false	"Filter by note"
// @Param			offset		query	uint	false	"The offset of the first Financial Entry returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Financial Entries to return. Defaults to 50."
func GetFinancialEntries(c *gin.Context) {
	var filter FinancialEntryQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var entries []models.FinancialEntry

	// Sort by creation, oldest first, so the order is stable for clients
	q := models.DB.
		Preload("Amounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("month ASC")
		}).
		Order("created_at ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, "", filter.Note, "")

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all Financial Entries and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&entries).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialEntryListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialEntryListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]FinancialEntry, 0)
	for _, entry := range entries {
		apiResources = append(apiResources, newFinancialEntry(c, entry))
	}

	c.JSON(http.StatusOK, FinancialEntryListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get financial entry
// @Description	Returns a specific financial entry
// @Tags			FinancialEntries
// @Produce		json
// @Success		200	{object}	FinancialEntryResponse
// @Failure		400	{object}	FinancialEntryResponse
// @Failure		404	{object}	FinancialEntryResponse
// @Failure		500	{object}	FinancialEntryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/entries/{id} [get]
func GetFinancialEntry(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialEntryResponse{
			Error: &s,
		})
		return
	}

	var entry models.FinancialEntry
	err = models.DB.
		Preload("Amounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("month ASC")
		}).
		First(&entry, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialEntryResponse{
			Error: &s,
		})
		return
	}

	apiResource := newFinancialEntry(c, entry)
	c.JSON(http.StatusOK, FinancialEntryResponse{Data: &apiResource})
}

// @Summary		Update financial entry
// @Description	Update an existing financial entry. Only values to be updated need to be specified. When the amounts field is set, the existing month buckets are replaced with the ones from the request.
// @Tags			FinancialEntries
// @Accept			json
// @Produce		json
// @Success		200		{object}	FinancialEntryResponse
// @Failure		400		{object}	FinancialEntryResponse
// @Failure		404		{object}	FinancialEntryResponse
// @Failure		500		{object}	FinancialEntryResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			entry	body		FinancialEntryEditable	true	"Financial Entry"
// @Router			/v1/entries/{id} [patch]
func UpdateFinancialEntry(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialEntryResponse{
			Error: &s,
		})
		return
	}

	var entry models.FinancialEntry
	err = models.DB.First(&entry, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialEntryResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FinancialEntryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialEntryResponse{
			Error: &s,
		})
		return
	}

	var data FinancialEntryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialEntryResponse{
			Error: &s,
		})
		return
	}

	// The amounts are replaced explicitly below, never by the generic update
	replaceAmounts := slices.Contains(updateFields, any("Amounts"))
	scalarFields := slices.DeleteFunc(updateFields, func(field any) bool {
		return field == any("Amounts")
	})

	if len(scalarFields) > 0 {
		err = models.DB.Model(&entry).Select("", scalarFields...).Updates(data.model()).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), FinancialEntryResponse{
				Error: &s,
			})
			return
		}
	}

	if replaceAmounts {
		err = replaceEntryAmounts(&entry, data.Amounts)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), FinancialEntryResponse{
				Error: &s,
			})
			return
		}
	}

	err = models.DB.
		Preload("Amounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("month ASC")
		}).
		First(&entry, entry.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialEntryResponse{
			Error: &s,
		})
		return
	}

	apiResource := newFinancialEntry(c, entry)
	c.JSON(http.StatusOK, FinancialEntryResponse{Data: &apiResource})
}

// replaceEntryAmounts swaps all month buckets of an entry with the ones passed in.
// The delete is unscoped since the month is part of the primary key and a
// soft-deleted row would block re-adding the same month.
func replaceEntryAmounts(entry *models.FinancialEntry, amounts []AmountEditable) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where("entry_id = ?", entry.ID).Delete(&models.FinancialAmount{}).Error
		if err != nil {
			return err
		}

		for _, editable := range amounts {
			amount := editable.model()
			amount.EntryID = entry.ID

			if err := tx.Create(&amount).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// @Summary		Delete financial entry
// @Description	Deletes a financial entry and its month buckets
// @Tags			FinancialEntries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/entries/{id} [delete]
func DeleteFinancialEntry(c *gin.Context) {
	deleteResource[models.FinancialEntry](c)
}
