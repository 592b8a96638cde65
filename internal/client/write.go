package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
)

type spendBody struct {
	Name          string          `json:"name"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	OwnerID       uuid.UUID       `json:"owner"`
	PaymentCardID uuid.UUID       `json:"paymentCard"`
}

type cardBody struct {
	Name           string          `json:"name"`
	Type           models.CardType `json:"type"`
	Number         string          `json:"number"`
	ExpirationDate string          `json:"expirationDate"`
	CVV            string          `json:"cvv"`
	OwnerID        uuid.UUID       `json:"owner"`
}

// CreateSpend creates the spend and returns its ID. The spend is not
// associated with its owner or card.
func (c *Client) CreateSpend(ctx context.Context, spend models.Spend) (uuid.UUID, error) {
	body := []spendBody{{
		Name:          spend.Name,
		Date:          string(spend.Date),
		Category:      spend.Category,
		Amount:        spend.Amount,
		OwnerID:       spend.OwnerID,
		PaymentCardID: spend.PaymentCardID,
	}}

	var r response[[]response[*models.Spend]]
	if err := c.do(ctx, http.MethodPost, "/v1/spends", body, &r); err != nil {
		return uuid.Nil, err
	}

	created, err := createError(r)
	if err != nil {
		return uuid.Nil, err
	}

	return created.ID, nil
}

// CreateCard creates the card for the user. The API associates it with
// the user in the same request.
func (c *Client) CreateCard(ctx context.Context, userID uuid.UUID, card models.Card) (uuid.UUID, error) {
	body := []cardBody{{
		Name:           card.Name,
		Type:           card.Type,
		Number:         card.Number,
		ExpirationDate: card.ExpirationDate,
		CVV:            card.CVV,
		OwnerID:        userID,
	}}

	var r response[[]response[*models.Card]]
	if err := c.do(ctx, http.MethodPost, "/v1/cards", body, &r); err != nil {
		return uuid.Nil, err
	}

	created, err := createError(r)
	if err != nil {
		return uuid.Nil, err
	}

	return created.ID, nil
}

func (c *Client) AddSpendToUser(ctx context.Context, userID, spendID uuid.UUID) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/users/%s/spends", userID), map[string]uuid.UUID{"spendId": spendID}, nil)
}

func (c *Client) AddSpendToCard(ctx context.Context, cardID, spendID uuid.UUID) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/cards/%s/spends", cardID), map[string]uuid.UUID{"spendId": spendID}, nil)
}

// SetBalance sets the balance of the user to an absolute value.
func (c *Client) SetBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/users/%s", userID), map[string]decimal.Decimal{"balance": balance}, nil)
}

func (c *Client) DeleteSpend(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/spends/%s", id), nil, nil)
}

func (c *Client) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/cards/%s", id), nil, nil)
}

func (c *Client) RemoveSpendFromUser(ctx context.Context, userID, spendID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/users/%s/spends/%s", userID, spendID), nil, nil)
}

func (c *Client) RemoveSpendFromCard(ctx context.Context, cardID, spendID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/cards/%s/spends/%s", cardID, spendID), nil, nil)
}
