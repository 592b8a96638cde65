package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/record-spend [options]
func OptionsRecordSpend(c *gin.Context) {
	if _, ok := getUser(c); !ok {
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Record spend
// @Description	Creates a spend, associates it with the user and its payment card and subtracts the amount from the balance of the user.
// @Description	All of this happens in one transaction, on error nothing is changed.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	RecordSpendResponse
// @Failure		400		{object}	RecordSpendResponse
// @Failure		404		{object}	RecordSpendResponse
// @Failure		500		{object}	RecordSpendResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spend	body		SpendEditable	true	"Spend. The owner defaults to the user"
// @Router			/v1/users/{id}/record-spend [post]
func RecordSpend(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		return
	}

	var editable SpendEditable
	err := httputil.BindData(c, &editable)

	var spend models.Spend
	if err == nil {
		spend, err = editable.model()
	}

	if err == nil {
		err = user.RecordSpend(models.DB, &spend)
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecordSpendResponse{
			Error: &e,
		})
		return
	}

	events.Publish(c.Request.Context(), events.Event{
		Type:    events.SpendRecorded,
		UserID:  user.ID,
		CardID:  spend.PaymentCardID,
		SpendID: spend.ID,
		Amount:  spend.Amount,
	})

	c.JSON(http.StatusCreated, RecordSpendResponse{
		Data: &RecordedSpend{
			Spend:   newSpend(c, spend),
			Balance: user.Balance,
		},
	})
}
