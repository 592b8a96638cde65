package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/models"
)

// CardEditable represents all user configurable parameters
type CardEditable struct {
	Name           string          `json:"name" example:"Everyday"`              // Name of the card
	Type           models.CardType `json:"type" example:"MASTERCARD"`            // Payment scheme, MASTERCARD or VISA
	Number         string          `json:"number" example:"5555 4444 3333 1234"` // Card number
	ExpirationDate string          `json:"expirationDate" example:"08/27"`       // Expiration date as printed on the card
}

// CardCreate is the body for creating a card
type CardCreate struct {
	CardEditable
	CVV     string    `json:"cvv" example:"123"`                                    // Security code. Stored, but never returned
	OwnerID uuid.UUID `json:"owner" example:"9b2f1ab2-4f31-4b3e-9f58-31c2d0b5e6f1"` // ID of the user the card is created for
}

func (create CardCreate) model() models.Card {
	return models.Card{
		Name:           create.Name,
		Type:           create.Type,
		Number:         create.Number,
		ExpirationDate: create.ExpirationDate,
		CVV:            create.CVV,
	}
}

type CardLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/cards/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The card itself
	Spends  string `json:"spends" example:"https://example.com/api/v1/cards/3b1ea324-d438-4419-882a-2fc91d71772f/spends"`   // Spends paid with the card
	Details string `json:"details" example:"https://example.com/api/v1/cards/3b1ea324-d438-4419-882a-2fc91d71772f/details"` // Card details view
}

type Card struct {
	models.DefaultModel
	CardEditable
	Links CardLinks `json:"links"`

	// These fields are computed
	LastFour string `json:"lastFour" example:"1234"`              // Last four digits of the number
	Masked   string `json:"masked" example:"**** **** **** 1234"` // Number for display
}

func newCard(c *gin.Context, model models.Card) Card {
	url := fmt.Sprintf("%s/v1/cards/%s", c.GetString(string(models.DBContextURL)), model.ID)

	return Card{
		DefaultModel: model.DefaultModel,
		CardEditable: CardEditable{
			Name:           model.Name,
			Type:           model.Type,
			Number:         model.Number,
			ExpirationDate: model.ExpirationDate,
		},
		Links: CardLinks{
			Self:    url,
			Spends:  url + "/spends",
			Details: url + "/details",
		},
		LastFour: model.LastFour(),
		Masked:   model.Masked(),
	}
}

type CardListResponse struct {
	Data  []Card  `json:"data"`                                                          // List of cards
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CardCreateResponse struct {
	Data  []CardResponse `json:"data"`                                                          // List of the created cards or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CardCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CardResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CardResponse struct {
	Data  *Card   `json:"data"`                                                          // Data for the card
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
