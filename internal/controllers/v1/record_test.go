package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordTestSpend(t *testing.T, url string, s v1.SpendEditable, expectedStatus ...int) v1.RecordedSpend {
	if s.Name == "" {
		s.Name = "Coffee"
	}

	if s.Date == "" {
		s.Date = "14-06-24"
	}

	if s.Category == "" {
		s.Category = "Food"
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, url, s)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.RecordSpendResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return *response.Data
	}

	return v1.RecordedSpend{}
}

func (suite *TestSuiteStandard) TestRecordSpend() {
	u := createTestUser(suite.T(), v1.UserEditable{Balance: decimal.NewFromInt(100000)})
	c := createTestCard(suite.T(), v1.CardCreate{OwnerID: u.Data.ID})

	recorded := recordTestSpend(suite.T(), u.Data.Links.RecordSpend, v1.SpendEditable{
		Name:          "Groceries",
		Date:          "14/06/2024",
		Category:      "Food",
		Amount:        decimal.RequireFromString("12990.50"),
		PaymentCardID: c.Data.ID,
	})

	assert.True(suite.T(), decimal.RequireFromString("87009.50").Equal(recorded.Balance))
	assert.Equal(suite.T(), types.SpendDate("14-06-24"), recorded.Spend.Date)
	assert.Equal(suite.T(), u.Data.ID, recorded.Spend.OwnerID, "The owner defaults to the user")

	user := getTestUser(suite.T(), u.Data.Links.Self)
	assert.True(suite.T(), decimal.RequireFromString("87009.50").Equal(user.Balance))
	assert.Equal(suite.T(), []uuid.UUID{recorded.Spend.ID}, user.Spends)

	var cardSpends v1.SpendListResponse
	r := test.Request(suite.T(), http.MethodGet, c.Data.Links.Spends, "")
	test.DecodeResponse(suite.T(), &r, &cardSpends)
	require.Len(suite.T(), cardSpends.Data, 1)
	assert.Equal(suite.T(), recorded.Spend.ID, cardSpends.Data[0].ID)

	published := suite.events.Events()
	require.Len(suite.T(), published, 1)
	assert.Equal(suite.T(), events.SpendRecorded, published[0].Type)
	assert.Equal(suite.T(), u.Data.ID, published[0].UserID)
	assert.Equal(suite.T(), c.Data.ID, published[0].CardID)
	assert.True(suite.T(), decimal.RequireFromString("12990.50").Equal(published[0].Amount))
}

func (suite *TestSuiteStandard) TestRecordSpendWithoutCard() {
	u := createTestUser(suite.T(), v1.UserEditable{Balance: decimal.NewFromInt(500)})

	recorded := recordTestSpend(suite.T(), u.Data.Links.RecordSpend, v1.SpendEditable{Amount: decimal.NewFromInt(800)})

	// The balance may become negative
	assert.True(suite.T(), decimal.NewFromInt(-300).Equal(recorded.Balance))
	assert.Equal(suite.T(), uuid.Nil, recorded.Spend.PaymentCardID)
}

func (suite *TestSuiteStandard) TestRecordSpendFails() {
	u := createTestUser(suite.T(), v1.UserEditable{Balance: decimal.NewFromInt(1000)})
	other := createTestUser(suite.T(), v1.UserEditable{})
	foreignCard := createTestCard(suite.T(), v1.CardCreate{OwnerID: other.Data.ID})

	tests := []struct {
		name   string
		url    string
		body   any
		status int
		err    string
	}{
		{"Card of another user", u.Data.Links.RecordSpend, v1.SpendEditable{Name: "Coffee", Date: "14-06-24", Amount: decimal.NewFromInt(10), PaymentCardID: foreignCard.Data.ID}, http.StatusBadRequest, models.ErrCardNotOwned.Error()},
		{"Unknown card", u.Data.Links.RecordSpend, v1.SpendEditable{Name: "Coffee", Date: "14-06-24", Amount: decimal.NewFromInt(10), PaymentCardID: uuid.New()}, http.StatusBadRequest, models.ErrCardNotOwned.Error()},
		{"Owner mismatch", u.Data.Links.RecordSpend, v1.SpendEditable{Name: "Coffee", Date: "14-06-24", Amount: decimal.NewFromInt(10), OwnerID: other.Data.ID}, http.StatusBadRequest, models.ErrSpendOwnerMismatch.Error()},
		{"Negative amount", u.Data.Links.RecordSpend, v1.SpendEditable{Name: "Coffee", Date: "14-06-24", Amount: decimal.NewFromInt(-10)}, http.StatusBadRequest, models.ErrSpendAmountNegative.Error()},
		{"Invalid date", u.Data.Links.RecordSpend, v1.SpendEditable{Name: "Coffee", Date: "yesterday", Amount: decimal.NewFromInt(10)}, http.StatusBadRequest, types.ErrSpendDateFormat.Error()},
		{"Empty name", u.Data.Links.RecordSpend, v1.SpendEditable{Date: "14-06-24", Amount: decimal.NewFromInt(10)}, http.StatusBadRequest, models.ErrSpendNameEmpty.Error()},
		{"Empty body", u.Data.Links.RecordSpend, "", http.StatusBadRequest, "the request body must not be empty"},
		{"Unknown user", "http://example.com/v1/users/" + uuid.New().String() + "/record-spend", v1.SpendEditable{Name: "Coffee", Date: "14-06-24"}, http.StatusNotFound, "there is no user"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Contains(t, r.Body.String(), tt.err)
		})
	}

	// Nothing has been changed by the failed requests
	user := getTestUser(suite.T(), u.Data.Links.Self)
	assert.True(suite.T(), decimal.NewFromInt(1000).Equal(user.Balance))
	assert.Empty(suite.T(), user.Spends)
	assert.Empty(suite.T(), suite.events.Events())

	var spends v1.SpendListResponse
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/spends", "")
	test.DecodeResponse(suite.T(), &r, &spends)
	assert.Empty(suite.T(), spends.Data)
}
