package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCard(t *testing.T, c v1.CardCreate, expectedStatus ...int) v1.CardResponse {
	if c.OwnerID == uuid.Nil {
		c.OwnerID = createTestUser(t, v1.UserEditable{}).Data.ID
	}

	if c.Name == "" {
		c.Name = "Everyday"
	}

	if c.Type == "" {
		c.Type = models.CardTypeMastercard
	}

	if c.Number == "" {
		c.Number = "5555 4444 3333 1234"
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/cards", []v1.CardCreate{c})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var card v1.CardCreateResponse
	test.DecodeResponse(t, &r, &card)

	if r.Code == http.StatusCreated {
		return card.Data[0]
	}

	return v1.CardResponse{}
}

func (suite *TestSuiteStandard) TestCardsCreate() {
	u := createTestUser(suite.T(), v1.UserEditable{})
	c := createTestCard(suite.T(), v1.CardCreate{
		CardEditable: v1.CardEditable{
			Name:           " Travel ",
			Type:           models.CardTypeVisa,
			Number:         "4111-1111-1111-9876",
			ExpirationDate: "08/27",
		},
		CVV:     "123",
		OwnerID: u.Data.ID,
	})

	assert.Equal(suite.T(), "Travel", c.Data.Name)
	assert.Equal(suite.T(), models.CardTypeVisa, c.Data.Type)
	assert.Equal(suite.T(), "9876", c.Data.LastFour)
	assert.Equal(suite.T(), "**** **** **** 9876", c.Data.Masked)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/cards/%s", c.Data.ID), c.Data.Links.Self)
	assert.Equal(suite.T(), c.Data.Links.Self+"/details", c.Data.Links.Details)

	// The card is associated with the owner
	user := getTestUser(suite.T(), u.Data.Links.Self)
	assert.Equal(suite.T(), []uuid.UUID{c.Data.ID}, user.Cards)

	// The CVV is never returned
	r := test.Request(suite.T(), http.MethodGet, c.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.NotContains(suite.T(), r.Body.String(), "cvv")
	assert.NotContains(suite.T(), r.Body.String(), "123\"")
}

func (suite *TestSuiteStandard) TestCardsCreateFails() {
	u := createTestUser(suite.T(), v1.UserEditable{})

	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"No owner", `[{ "name": "Everyday", "type": "VISA" }]`, http.StatusBadRequest, "the owner must be set"},
		{"Owner does not exist", fmt.Sprintf(`[{ "name": "Everyday", "type": "VISA", "owner": %q }]`, uuid.New()), http.StatusNotFound, "there is no"},
		{"Invalid type", fmt.Sprintf(`[{ "name": "Everyday", "type": "AMEX", "owner": %q }]`, u.Data.ID), http.StatusBadRequest, models.ErrCardTypeInvalid.Error()},
		{"Empty name", fmt.Sprintf(`[{ "name": " ", "type": "VISA", "owner": %q }]`, u.Data.ID), http.StatusBadRequest, models.ErrCardNameEmpty.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/cards", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.CardCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Contains(t, *response.Data[0].Error, tt.err)
		})
	}

	// No card has been associated by the failed requests
	assert.Empty(suite.T(), getTestUser(suite.T(), u.Data.Links.Self).Cards)
}

func (suite *TestSuiteStandard) TestCardsGetSingle() {
	c := createTestCard(suite.T(), v1.CardCreate{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Card", c.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Card with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"OPTIONS Existing Card", c.Data.ID.String(), http.StatusNoContent, http.MethodOptions},
		{"OPTIONS No Card with this ID", uuid.New().String(), http.StatusNotFound, http.MethodOptions},
		{"DELETE Invalid ID", "notaUUID", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No Card with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/cards/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCardsDelete() {
	u := createTestUser(suite.T(), v1.UserEditable{})
	c := createTestCard(suite.T(), v1.CardCreate{OwnerID: u.Data.ID})
	s := createTestSpend(suite.T(), v1.SpendEditable{OwnerID: u.Data.ID, PaymentCardID: c.Data.ID})

	r := test.Request(suite.T(), http.MethodPost, c.Data.Links.Spends, v1.SpendReference{SpendID: s.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodDelete, c.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, c.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The association with the user is gone, the spend is kept
	assert.Empty(suite.T(), getTestUser(suite.T(), u.Data.Links.Self).Cards)

	r = test.Request(suite.T(), http.MethodGet, s.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	published := suite.events.Events()
	require.NotEmpty(suite.T(), published)
	last := published[len(published)-1]
	assert.Equal(suite.T(), events.CardDeleted, last.Type)
	assert.Equal(suite.T(), c.Data.ID, last.CardID)
}

func (suite *TestSuiteStandard) TestCardsOptionsList() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/cards", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, POST", r.Header().Get("allow"))
}
