package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

// CardReference is the body for associating a card.
type CardReference struct {
	CardID uuid.UUID `json:"cardId" example:"7d5b4b11-4c8b-4a8b-8d6b-1f6e7e4b6e2a"` // ID of the card
}

// SpendReference is the body for associating a spend.
type SpendReference struct {
	SpendID uuid.UUID `json:"spendId" example:"d1a7e7a4-8e0c-4e0b-9b31-5c1f8f1c1f0e"` // ID of the spend
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/cards [options]
func OptionsUserCards(c *gin.Context) {
	if _, ok := getUser(c); !ok {
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Get cards of a user
// @Description	Returns the cards associated with the user, in the order they were associated
// @Tags			Users
// @Produce		json
// @Success		200	{object}	CardListResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	CardListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/cards [get]
func GetUserCards(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		return
	}

	cards, err := user.Cards(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Card, 0, len(cards))
	for _, card := range cards {
		data = append(data, newCard(c, card))
	}

	c.JSON(http.StatusOK, CardListResponse{Data: data})
}

// @Summary		Associate card with user
// @Description	Adds an existing card to the cards of the user
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	CardResponse
// @Failure		400		{object}	CardResponse
// @Failure		404		{object}	CardResponse
// @Failure		500		{object}	CardResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			card	body		CardReference	true	"Card"
// @Router			/v1/users/{id}/cards [post]
func AddUserCard(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		return
	}

	var ref CardReference
	err := httputil.BindData(c, &ref)
	if err == nil && ref.CardID == uuid.Nil {
		err = errCardIDNotSet
	}

	var card models.Card
	if err == nil {
		err = models.DB.First(&card, ref.CardID).Error
	}

	if err == nil {
		err = models.DB.Create(&models.UserCard{UserID: user.ID, CardID: card.ID}).Error
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{
			Error: &e,
		})
		return
	}

	data := newCard(c, card)
	c.JSON(http.StatusCreated, CardResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			cardId	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/cards/{cardId} [options]
func OptionsUserCard(c *gin.Context) {
	var uri URICard
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Remove card from user
// @Description	Removes the association between the user and the card. The card itself is kept.
// @Tags			Users
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			cardId	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/cards/{cardId} [delete]
func RemoveUserCard(c *gin.Context) {
	var uri URICard
	err := c.ShouldBindUri(&uri)
	if err == nil {
		err = models.Unlink(models.DB, &models.UserCard{UserID: uri.ID.UUID, CardID: uri.CardID.UUID})
	}

	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/spends [options]
func OptionsUserSpends(c *gin.Context) {
	if _, ok := getUser(c); !ok {
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Get spends of a user
// @Description	Returns the spends associated with the user, in the order they were associated
// @Tags			Users
// @Produce		json
// @Success		200	{object}	SpendListResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	SpendListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/spends [get]
func GetUserSpends(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		return
	}

	spends, err := user.Spends(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendListResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SpendListResponse{Data: newSpends(c, spends)})
}

// @Summary		Associate spend with user
// @Description	Adds an existing spend to the spends of the user
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	SpendResponse
// @Failure		400		{object}	SpendResponse
// @Failure		404		{object}	SpendResponse
// @Failure		500		{object}	SpendResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spend	body		SpendReference	true	"Spend"
// @Router			/v1/users/{id}/spends [post]
func AddUserSpend(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		return
	}

	spend, err := bindSpendReference(c)
	if err == nil {
		err = models.DB.Create(&models.UserSpend{UserID: user.ID, SpendID: spend.ID}).Error
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{
			Error: &e,
		})
		return
	}

	data := newSpend(c, spend)
	c.JSON(http.StatusCreated, SpendResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spendId	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/spends/{spendId} [options]
func OptionsUserSpend(c *gin.Context) {
	optionsSpendAssociation(c)
}

// @Summary		Remove spend from user
// @Description	Removes the association between the user and the spend. The spend itself is kept.
// @Tags			Users
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spendId	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/spends/{spendId} [delete]
func RemoveUserSpend(c *gin.Context) {
	var uri URISpend
	err := c.ShouldBindUri(&uri)
	if err == nil {
		err = models.Unlink(models.DB, &models.UserSpend{UserID: uri.ID.UUID, SpendID: uri.SpendID.UUID})
	}

	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id}/spends [options]
func OptionsCardSpends(c *gin.Context) {
	if _, ok := getCard(c); !ok {
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Get spends of a card
// @Description	Returns the spends paid with the card, in the order they were associated
// @Tags			Cards
// @Produce		json
// @Success		200	{object}	SpendListResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	SpendListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id}/spends [get]
func GetCardSpends(c *gin.Context) {
	card, ok := getCard(c)
	if !ok {
		return
	}

	spends, err := card.Spends(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendListResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SpendListResponse{Data: newSpends(c, spends)})
}

// @Summary		Associate spend with card
// @Description	Adds an existing spend to the spends paid with the card
// @Tags			Cards
// @Accept			json
// @Produce		json
// @Success		201		{object}	SpendResponse
// @Failure		400		{object}	SpendResponse
// @Failure		404		{object}	SpendResponse
// @Failure		500		{object}	SpendResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spend	body		SpendReference	true	"Spend"
// @Router			/v1/cards/{id}/spends [post]
func AddCardSpend(c *gin.Context) {
	card, ok := getCard(c)
	if !ok {
		return
	}

	spend, err := bindSpendReference(c)
	if err == nil {
		err = models.DB.Create(&models.CardSpend{CardID: card.ID, SpendID: spend.ID}).Error
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{
			Error: &e,
		})
		return
	}

	data := newSpend(c, spend)
	c.JSON(http.StatusCreated, SpendResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cards
// @Success		204
// @Failure		400		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spendId	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id}/spends/{spendId} [options]
func OptionsCardSpend(c *gin.Context) {
	optionsSpendAssociation(c)
}

// @Summary		Remove spend from card
// @Description	Removes the association between the card and the spend. The spend itself is kept.
// @Tags			Cards
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spendId	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id}/spends/{spendId} [delete]
func RemoveCardSpend(c *gin.Context) {
	var uri URISpend
	err := c.ShouldBindUri(&uri)
	if err == nil {
		err = models.Unlink(models.DB, &models.CardSpend{CardID: uri.ID.UUID, SpendID: uri.SpendID.UUID})
	}

	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func optionsSpendAssociation(c *gin.Context) {
	var uri URISpend
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsDelete(c)
}

// bindSpendReference binds a SpendReference from the request body
// and loads the spend it references.
func bindSpendReference(c *gin.Context) (spend models.Spend, err error) {
	var ref SpendReference
	err = httputil.BindData(c, &ref)
	if err != nil {
		return
	}

	if ref.SpendID == uuid.Nil {
		return spend, errSpendIDNotSet
	}

	err = models.DB.First(&spend, ref.SpendID).Error
	return
}
