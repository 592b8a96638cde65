package client_test

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/client"
	"github.com/spendwise/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRecordSpend() {
	user := suite.createUser(1000)
	cardID := suite.createCard(user)

	spend, balance, err := suite.client.RecordSpend(context.Background(), user.ID, models.Spend{
		Name:          "Coffee",
		Date:          "14-06-24",
		Category:      "Food",
		Amount:        decimal.NewFromInt(250),
		PaymentCardID: cardID,
	})
	suite.Require().Nil(err)

	assert.NotEqual(suite.T(), uuid.Nil, spend.ID)
	assert.Equal(suite.T(), user.ID, spend.OwnerID, "The owner defaults to the user")
	assert.True(suite.T(), decimal.NewFromInt(750).Equal(balance))

	cardSpends, err := suite.client.CardSpends(context.Background(), cardID)
	suite.Require().Nil(err)
	assert.Len(suite.T(), cardSpends, 1)
}

func (suite *TestSuiteStandard) TestRecordSpendCompensation() {
	tests := []struct {
		name    string
		step    client.Step
		failing func(r *http.Request) bool
	}{
		{
			"Create fails", client.StepCreate,
			func(r *http.Request) bool {
				return r.Method == http.MethodPost && r.URL.Path == "/v1/spends"
			},
		},
		{
			"Linking to user fails", client.StepLinkUser,
			func(r *http.Request) bool {
				return r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/v1/users/") && strings.HasSuffix(r.URL.Path, "/spends")
			},
		},
		{
			"Linking to card fails", client.StepLinkCard,
			func(r *http.Request) bool {
				return r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/v1/cards/") && strings.HasSuffix(r.URL.Path, "/spends")
			},
		},
		{
			"Setting the balance fails", client.StepSetBalance,
			func(r *http.Request) bool {
				return r.Method == http.MethodPatch
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			user := suite.createUser(1000)
			cardID := suite.createCard(user)

			suite.failing = tt.failing
			defer func() { suite.failing = nil }()

			_, _, err := suite.client.RecordSpend(context.Background(), user.ID, models.Spend{
				Name:          "Coffee",
				Date:          "14-06-24",
				Category:      "Food",
				Amount:        decimal.NewFromInt(250),
				PaymentCardID: cardID,
			})

			var sagaErr *client.SagaError
			suite.Require().ErrorAs(err, &sagaErr)
			assert.Equal(suite.T(), tt.step, sagaErr.Step)
			assert.True(suite.T(), sagaErr.Compensated(), sagaErr.Error())

			var apiErr *client.APIError
			suite.Require().ErrorAs(err, &apiErr)
			assert.Equal(suite.T(), http.StatusInternalServerError, apiErr.StatusCode)

			suite.failing = nil

			// Nothing is left behind
			var count int64
			suite.Require().Nil(models.DB.Model(&models.Spend{}).Count(&count).Error)
			assert.Equal(suite.T(), int64(0), count)

			u, err := suite.client.User(context.Background(), user.ID)
			suite.Require().Nil(err)
			assert.True(suite.T(), decimal.NewFromInt(1000).Equal(u.Balance))

			spends, err := suite.client.UserSpends(context.Background(), user.ID)
			suite.Require().Nil(err)
			assert.Empty(suite.T(), spends)
		})
	}
}

func (suite *TestSuiteStandard) TestRecordSpendCompensationFails() {
	user := suite.createUser(1000)

	// Deleting is broken as well, so the spend cannot be removed again
	suite.failing = func(r *http.Request) bool {
		return r.Method == http.MethodPatch || r.Method == http.MethodDelete
	}

	_, _, err := suite.client.RecordSpend(context.Background(), user.ID, models.Spend{
		Name:   "Coffee",
		Date:   "14-06-24",
		Amount: decimal.NewFromInt(250),
	})

	var sagaErr *client.SagaError
	suite.Require().ErrorAs(err, &sagaErr)
	assert.Equal(suite.T(), client.StepSetBalance, sagaErr.Step)
	assert.False(suite.T(), sagaErr.Compensated())
	assert.Len(suite.T(), sagaErr.Compensation, 2, "Unlinking from the user and deleting the spend")
	assert.Contains(suite.T(), sagaErr.Error(), "undoing failed")
}

func (suite *TestSuiteStandard) TestRecordSpendOwnerMismatch() {
	user := suite.createUser(1000)

	_, _, err := suite.client.RecordSpend(context.Background(), user.ID, models.Spend{Name: "Coffee", Date: "14-06-24", OwnerID: uuid.New()})
	assert.ErrorIs(suite.T(), err, models.ErrSpendOwnerMismatch)
}

func (suite *TestSuiteStandard) TestRecordSpendCardOfAnotherUser() {
	ctx := context.Background()
	owner := suite.createUser(1000)
	cardID := suite.createCard(owner)
	user := suite.createUser(1000)

	_, _, err := suite.client.RecordSpend(ctx, user.ID, models.Spend{
		Name:          "Coffee",
		Date:          "14-06-24",
		Category:      "Food",
		Amount:        decimal.NewFromInt(100),
		PaymentCardID: cardID,
	})

	var sagaErr *client.SagaError
	suite.Require().ErrorAs(err, &sagaErr)
	assert.Equal(suite.T(), client.StepCreate, sagaErr.Step)
	assert.True(suite.T(), sagaErr.Compensated())
	assert.ErrorIs(suite.T(), err, models.ErrCardNotOwned)

	// Recording in a single transaction is rejected as well
	err = user.RecordSpend(models.DB, &models.Spend{Name: "Coffee", Date: "14-06-24", Amount: decimal.NewFromInt(100), PaymentCardID: cardID})
	assert.ErrorIs(suite.T(), err, models.ErrCardNotOwned)

	spends, err := suite.client.CardSpends(ctx, cardID)
	suite.Require().Nil(err)
	assert.Empty(suite.T(), spends)

	stored, err := suite.client.User(ctx, user.ID)
	suite.Require().Nil(err)
	assert.True(suite.T(), decimal.NewFromInt(1000).Equal(stored.Balance))
}
