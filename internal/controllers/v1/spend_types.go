package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

// SpendEditable represents all user configurable parameters
type SpendEditable struct {
	Name          string          `json:"name" example:"Groceries"`                                   // Name of the spend
	Date          string          `json:"date" example:"14-06-24"`                                    // Day of the spend. DD-MM-YY, DD/MM/YYYY, DD/MM/YY and YYYY-MM-DD are accepted
	Category      string          `json:"category" example:"Food"`                                    // Category of the spend
	Amount        decimal.Decimal `json:"amount" example:"12990" swaggertype:"string"`                // Amount of the spend
	OwnerID       uuid.UUID       `json:"owner" example:"0a1b0e4f-0a4e-4b0a-a91f-1f5e8ff3c0a0"`       // ID of the user owning the spend
	PaymentCardID uuid.UUID       `json:"paymentCard" example:"7d5b4b11-4c8b-4a8b-8d6b-1f6e7e4b6e2a"` // ID of the card used for the spend
}

// model converts the editable to a spend. The date is normalized to DD-MM-YY.
func (editable SpendEditable) model() (models.Spend, error) {
	date, err := types.NormalizeSpendDate(editable.Date)
	if err != nil {
		return models.Spend{}, err
	}

	return models.Spend{
		Name:          editable.Name,
		Date:          date,
		Category:      editable.Category,
		Amount:        editable.Amount,
		OwnerID:       editable.OwnerID,
		PaymentCardID: editable.PaymentCardID,
	}, nil
}

type SpendLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/spends/d1a7e7a4-8e0c-4e0b-9b31-5c1f8f1c1f0e"` // The spend itself
}

type Spend struct {
	models.Spend
	Links SpendLinks `json:"links"`
}

func newSpend(c *gin.Context, model models.Spend) Spend {
	return Spend{
		Spend: model,
		Links: SpendLinks{
			Self: fmt.Sprintf("%s/v1/spends/%s", c.GetString(string(models.DBContextURL)), model.ID),
		},
	}
}

func newSpends(c *gin.Context, spends []models.Spend) []Spend {
	data := make([]Spend, 0, len(spends))
	for _, s := range spends {
		data = append(data, newSpend(c, s))
	}

	return data
}

type SpendListResponse struct {
	Data       []Spend     `json:"data"`                                                          // List of spends
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type SpendCreateResponse struct {
	Data  []SpendResponse `json:"data"`                                                          // List of the created spends or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *SpendCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, SpendResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SpendResponse struct {
	Data  *Spend  `json:"data"`                                                          // Data for the spend
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RecordedSpend is the result of recording a spend for a user.
type RecordedSpend struct {
	Spend   Spend           `json:"spend"`                                         // The created spend
	Balance decimal.Decimal `json:"balance" example:"137010" swaggertype:"string"` // Balance of the user after the spend
}

type RecordSpendResponse struct {
	Data  *RecordedSpend `json:"data"`                                                     // The recorded spend and the new balance
	Error *string        `json:"error" example:"the card is not associated with the user"` // The error, if any occurred
}
