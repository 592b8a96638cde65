package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
	"github.com/spendwise/backend/internal/types"
	"github.com/spendwise/backend/internal/views"
)

type SummaryResponse struct {
	Data  *views.Home `json:"data"`                                                           // The home screen summary
	Error *string     `json:"error" example:"the data could not be loaded, please try again"` // The error, if any occurred
}

type StatsResponse struct {
	Data  *views.Stats `json:"data"`                                                           // Statistics for the month
	Error *string      `json:"error" example:"the data could not be loaded, please try again"` // The error, if any occurred
}

type TransactionsResponse struct {
	Data  *views.Transactions `json:"data"`                                                           // Spends of the category in the month
	Error *string             `json:"error" example:"the data could not be loaded, please try again"` // The error, if any occurred
}

type CardDetailsResponse struct {
	Data  *views.CardDetails `json:"data"`                                                           // Details of the card
	Error *string            `json:"error" example:"the data could not be loaded, please try again"` // The error, if any occurred
}

type TransactionsQuery struct {
	Category string `form:"category" binding:"required"`            // Name of the category
	Month    string `form:"month" binding:"required,len=2,numeric"` // Two-digit month, e.g. 06
	Year     string `form:"year" binding:"required,len=2,numeric"`  // Two-digit year, e.g. 24
}

func loader() views.Loader {
	return views.Loader{Source: store.New(models.DB)}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Views
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/summary [options]
// @Router			/v1/users/{id}/stats [options]
// @Router			/v1/users/{id}/transactions [options]
// @Router			/v1/users/{id}/export [options]
// @Router			/v1/cards/{id}/details [options]
func OptionsView(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Home summary
// @Description	Returns the balance, totals, latest spends, categories and cards of the user
// @Tags			Views
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		400	{object}	SummaryResponse
// @Failure		404	{object}	SummaryResponse
// @Failure		500	{object}	SummaryResponse
// @Failure		503	{object}	SummaryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			now	query		string	false	"The current day in YYYY-MM-DD format. Defaults to today"
// @Router			/v1/users/{id}/summary [get]
func GetSummary(c *gin.Context) {
	var uri URIID
	var query QueryNow

	err := c.ShouldBindUri(&uri)
	if err == nil {
		err = c.ShouldBindQuery(&query)
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{Error: &e})
		return
	}

	now := query.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	home, err := loader().Home(c.Request.Context(), uri.ID.UUID, now)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &home})
}

// @Summary		Monthly statistics
// @Description	Returns the spends of the user in a month, aggregated by category, and the monthly totals of its year
// @Tags			Views
// @Produce		json
// @Success		200		{object}	StatsResponse
// @Failure		400		{object}	StatsResponse
// @Failure		404		{object}	StatsResponse
// @Failure		500		{object}	StatsResponse
// @Failure		503		{object}	StatsResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	query		string	false	"The month in YYYY-MM format. Defaults to the current month"
// @Router			/v1/users/{id}/stats [get]
func GetStats(c *gin.Context) {
	var uri URIID
	var query QueryMonth

	err := c.ShouldBindUri(&uri)
	if err == nil {
		err = c.ShouldBindQuery(&query)
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatsResponse{Error: &e})
		return
	}

	month := types.MonthOf(query.Month)
	if query.Month.IsZero() {
		month = types.MonthOf(time.Now().UTC())
	}

	stats, err := loader().Stats(c.Request.Context(), uri.ID.UUID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{Data: &stats})
}

// @Summary		Transaction details
// @Description	Returns the spends of the user in one category and month
// @Tags			Views
// @Produce		json
// @Success		200			{object}	TransactionsResponse
// @Failure		400			{object}	TransactionsResponse
// @Failure		404			{object}	TransactionsResponse
// @Failure		500			{object}	TransactionsResponse
// @Failure		503			{object}	TransactionsResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	query		string	true	"Name of the category"
// @Param			month		query		string	true	"Two-digit month, e.g. 06"
// @Param			year		query		string	true	"Two-digit year, e.g. 24"
// @Router			/v1/users/{id}/transactions [get]
func GetTransactions(c *gin.Context) {
	var uri URIID
	var query TransactionsQuery

	err := c.ShouldBindUri(&uri)
	if err == nil {
		err = c.ShouldBindQuery(&query)
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionsResponse{Error: &e})
		return
	}

	transactions, err := loader().Transactions(c.Request.Context(), uri.ID.UUID, query.Category, query.Month, query.Year)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionsResponse{Data: &transactions})
}

// @Summary		Card details
// @Description	Returns the total, the categories and the latest spends of a card
// @Tags			Views
// @Produce		json
// @Success		200	{object}	CardDetailsResponse
// @Failure		400	{object}	CardDetailsResponse
// @Failure		404	{object}	CardDetailsResponse
// @Failure		500	{object}	CardDetailsResponse
// @Failure		503	{object}	CardDetailsResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id}/details [get]
func GetCardDetails(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), CardDetailsResponse{Error: &e})
		return
	}

	details, err := loader().CardDetails(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardDetailsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CardDetailsResponse{Data: &details})
}
