package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
	ez_uuid "github.com/spendwise/backend/internal/uuid"
	"golang.org/x/exp/slices"
)

// RegisterSpendRoutes registers the routes for spends with
// the RouterGroup that is passed.
func RegisterSpendRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSpendList)
		r.GET("", GetSpends)
		r.POST("", CreateSpends)
	}

	// Spend with ID
	{
		r.OPTIONS("/:id", OptionsSpendDetail)
		r.GET("/:id", GetSpend)
		r.DELETE("/:id", DeleteSpend)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spends
// @Success		204
// @Router			/v1/spends [options]
func OptionsSpendList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spends
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spends/{id} [options]
func OptionsSpendDetail(c *gin.Context) {
	if _, ok := getSpend(c); !ok {
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create spends
// @Description	Creates new spends. The spends are not associated with their owner or card, use the association endpoints or record-spend for that.
// @Tags			Spends
// @Produce		json
// @Success		201		{object}	SpendCreateResponse
// @Failure		400		{object}	SpendCreateResponse
// @Failure		404		{object}	SpendCreateResponse
// @Failure		500		{object}	SpendCreateResponse
// @Param			spends	body		[]SpendEditable	true	"Spends"
// @Router			/v1/spends [post]
func CreateSpends(c *gin.Context) {
	var editables []SpendEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SpendCreateResponse{}

	for _, editable := range editables {
		if editable.OwnerID == uuid.Nil {
			status = r.appendError(errOwnerNotSet, status)
			continue
		}

		spend, err := editable.model()
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = models.DB.Create(&spend).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		events.Publish(c.Request.Context(), events.Event{
			Type:    events.SpendCreated,
			UserID:  spend.OwnerID,
			CardID:  spend.PaymentCardID,
			SpendID: spend.ID,
			Amount:  spend.Amount,
		})

		data := newSpend(c, spend)
		r.Data = append(r.Data, SpendResponse{Data: &data})
	}

	c.JSON(status, r)
}

type SpendQueryFilter struct {
	Owner    ez_uuid.UUID `form:"owner" filterField:"false"`  // By ID of the owner
	Card     ez_uuid.UUID `form:"card" filterField:"false"`   // By ID of the payment card
	Category string       `form:"category"`                   // By category, exact match
	Search   string       `form:"search" filterField:"false"` // Glob pattern on the name, e.g. "*coffee*"
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first spend returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of spends to return. Defaults to 50.
}

// @Summary		Get spends
// @Description	Returns a list of spends, ordered by creation
// @Tags			Spends
// @Produce		json
// @Success		200			{object}	SpendListResponse
// @Failure		400			{object}	SpendListResponse
// @Failure		500			{object}	SpendListResponse
// @Param			owner		query		string	false	"Filter by owner ID"
// @Param			card		query		string	false	"Filter by payment card ID"
// @Param			category	query		string	false	"Filter by category"
// @Param			search		query		string	false	"Glob pattern the name must match"
// @Param			offset		query		uint	false	"The offset of the first spend returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of spends to return. Defaults to 50."
// @Router			/v1/spends [get]
func GetSpends(c *gin.Context) {
	var filter SpendQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, SpendListResponse{
			Error: &e,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("created_at ASC, id ASC").Where(&models.Spend{
		Category: filter.Category,
	}, queryFields...)

	if !filter.Owner.IsNil() {
		q = q.Where("owner_id = ?", filter.Owner.UUID)
	}

	if !filter.Card.IsNil() {
		q = q.Where("payment_card_id = ?", filter.Card.UUID)
	}

	var spends []models.Spend
	err := q.Find(&spends).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendListResponse{
			Error: &e,
		})
		return
	}

	// Glob patterns cannot be expressed portably in SQL
	if filter.Search != "" {
		spends = slices.DeleteFunc(spends, func(s models.Spend) bool {
			return !glob.Glob(filter.Search, s.Name)
		})
	}

	// Default to 50 spends and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	total := int64(len(spends))
	page := paginate(spends, filter.Offset, limit)

	data := newSpends(c, page)
	c.JSON(http.StatusOK, SpendListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// paginate returns the part of s selected by offset and limit.
// A negative limit selects everything after offset.
func paginate[T any](s []T, offset uint, limit int) []T {
	if offset >= uint(len(s)) {
		return []T{}
	}

	s = s[offset:]
	if limit >= 0 && limit < len(s) {
		s = s[:limit]
	}

	return s
}

// @Summary		Get spend
// @Description	Returns a specific spend
// @Tags			Spends
// @Produce		json
// @Success		200	{object}	SpendResponse
// @Failure		400	{object}	SpendResponse
// @Failure		404	{object}	SpendResponse
// @Failure		500	{object}	SpendResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spends/{id} [get]
func GetSpend(c *gin.Context) {
	spend, ok := getSpend(c)
	if !ok {
		return
	}

	data := newSpend(c, spend)
	c.JSON(http.StatusOK, SpendResponse{Data: &data})
}

// @Summary		Delete spend
// @Description	Deletes a spend and removes it from its user and card
// @Tags			Spends
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spends/{id} [delete]
func DeleteSpend(c *gin.Context) {
	spend, ok := getSpend(c)
	if !ok {
		return
	}

	err := spend.Delete(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.Publish(c.Request.Context(), events.Event{
		Type:    events.SpendDeleted,
		UserID:  spend.OwnerID,
		CardID:  spend.PaymentCardID,
		SpendID: spend.ID,
		Amount:  spend.Amount,
	})
	c.JSON(http.StatusNoContent, nil)
}

// getSpend loads the spend with the ID from the URI. If that fails,
// the error is written to the response and ok is false.
func getSpend(c *gin.Context) (spend models.Spend, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&spend, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	return spend, true
}
