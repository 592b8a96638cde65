package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

// RegisterCardRoutes registers the routes for cards with
// the RouterGroup that is passed.
func RegisterCardRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCardList)
		r.POST("", CreateCards)
	}

	// Card with ID
	{
		r.OPTIONS("/:id", OptionsCardDetail)
		r.GET("/:id", GetCard)
		r.DELETE("/:id", DeleteCard)
	}

	{
		r.OPTIONS("/:id/spends", OptionsCardSpends)
		r.GET("/:id/spends", GetCardSpends)
		r.POST("/:id/spends", AddCardSpend)
		r.OPTIONS("/:id/spends/:spendId", OptionsCardSpend)
		r.DELETE("/:id/spends/:spendId", RemoveCardSpend)

		r.OPTIONS("/:id/details", OptionsView)
		r.GET("/:id/details", GetCardDetails)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cards
// @Success		204
// @Router			/v1/cards [options]
func OptionsCardList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id} [options]
func OptionsCardDetail(c *gin.Context) {
	if _, ok := getCard(c); !ok {
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create cards
// @Description	Creates new cards. Each card is associated with its owner.
// @Tags			Cards
// @Produce		json
// @Success		201		{object}	CardCreateResponse
// @Failure		400		{object}	CardCreateResponse
// @Failure		404		{object}	CardCreateResponse
// @Failure		500		{object}	CardCreateResponse
// @Param			cards	body		[]CardCreate	true	"Cards"
// @Router			/v1/cards [post]
func CreateCards(c *gin.Context) {
	var creates []CardCreate

	err := httputil.BindData(c, &creates)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CardCreateResponse{}

	for _, create := range creates {
		if create.OwnerID == uuid.Nil {
			status = r.appendError(errOwnerNotSet, status)
			continue
		}

		var owner models.User
		err = models.DB.First(&owner, create.OwnerID).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		card := create.model()
		err = owner.CreateCard(models.DB, &card)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCard(c, card)
		r.Data = append(r.Data, CardResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get card
// @Description	Returns a specific card
// @Tags			Cards
// @Produce		json
// @Success		200	{object}	CardResponse
// @Failure		400	{object}	CardResponse
// @Failure		404	{object}	CardResponse
// @Failure		500	{object}	CardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id} [get]
func GetCard(c *gin.Context) {
	card, ok := getCard(c)
	if !ok {
		return
	}

	data := newCard(c, card)
	c.JSON(http.StatusOK, CardResponse{Data: &data})
}

// @Summary		Delete card
// @Description	Deletes a card and removes it from its users and spends. The spends are kept.
// @Tags			Cards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id} [delete]
func DeleteCard(c *gin.Context) {
	card, ok := getCard(c)
	if !ok {
		return
	}

	err := card.Delete(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.Publish(c.Request.Context(), events.Event{Type: events.CardDeleted, CardID: card.ID})
	c.JSON(http.StatusNoContent, nil)
}

// getCard loads the card with the ID from the URI. If that fails,
// the error is written to the response and ok is false.
func getCard(c *gin.Context) (card models.Card, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&card, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	return card, true
}
