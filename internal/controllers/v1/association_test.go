package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestUserCards() {
	owner := createTestUser(suite.T(), v1.UserEditable{})
	other := createTestUser(suite.T(), v1.UserEditable{})
	card := createTestCard(suite.T(), v1.CardCreate{OwnerID: owner.Data.ID})

	suite.T().Run("Add", func(t *testing.T) {
		r := test.Request(t, http.MethodPost, other.Data.Links.Cards, v1.CardReference{CardID: card.Data.ID})
		test.AssertHTTPStatus(t, &r, http.StatusCreated)

		var response v1.CardResponse
		test.DecodeResponse(t, &r, &response)
		assert.Equal(t, card.Data.ID, response.Data.ID)
	})

	suite.T().Run("List", func(t *testing.T) {
		r := test.Request(t, http.MethodGet, other.Data.Links.Cards, "")
		test.AssertHTTPStatus(t, &r, http.StatusOK)

		var response v1.CardListResponse
		test.DecodeResponse(t, &r, &response)
		require.Len(t, response.Data, 1)
		assert.Equal(t, card.Data.ID, response.Data[0].ID)
		assert.Equal(t, "1234", response.Data[0].LastFour)
	})

	suite.T().Run("Add fails", func(t *testing.T) {
		tests := []struct {
			name   string
			body   any
			status int
			err    string
		}{
			{"Duplicate", v1.CardReference{CardID: card.Data.ID}, http.StatusBadRequest, models.ErrUserCardExists.Error()},
			{"No card", `{}`, http.StatusBadRequest, "the cardId must be set"},
			{"Unknown card", v1.CardReference{CardID: uuid.New()}, http.StatusNotFound, "there is no card"},
			{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r := test.Request(t, http.MethodPost, other.Data.Links.Cards, tt.body)
				test.AssertHTTPStatus(t, &r, tt.status)

				var response v1.CardResponse
				test.DecodeResponse(t, &r, &response)
				assert.Contains(t, *response.Error, tt.err)
			})
		}
	})

	suite.T().Run("Remove", func(t *testing.T) {
		url := fmt.Sprintf("%s/%s", other.Data.Links.Cards, card.Data.ID)

		r := test.Request(t, http.MethodDelete, url, "")
		test.AssertHTTPStatus(t, &r, http.StatusNoContent)

		r = test.Request(t, http.MethodDelete, url, "")
		test.AssertHTTPStatus(t, &r, http.StatusNotFound)
		assert.Contains(t, r.Body.String(), "there is no user card association matching your query")

		// The card itself and its association with the owner are kept
		assert.Empty(t, getTestUser(t, other.Data.Links.Self).Cards)
		assert.Equal(t, []uuid.UUID{card.Data.ID}, getTestUser(t, owner.Data.Links.Self).Cards)
	})
}

func (suite *TestSuiteStandard) TestUserSpends() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	spend := createTestSpend(suite.T(), v1.SpendEditable{OwnerID: user.Data.ID})

	r := test.Request(suite.T(), http.MethodPost, user.Data.Links.Spends, v1.SpendReference{SpendID: spend.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodPost, user.Data.Links.Spends, v1.SpendReference{SpendID: spend.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Contains(suite.T(), r.Body.String(), models.ErrUserSpendExists.Error())

	r = test.Request(suite.T(), http.MethodPost, user.Data.Links.Spends, `{ "spendId": "00000000-0000-0000-0000-000000000000" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Contains(suite.T(), r.Body.String(), "the spendId must be set")

	var list v1.SpendListResponse
	r = test.Request(suite.T(), http.MethodGet, user.Data.Links.Spends, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), spend.Data.ID, list.Data[0].ID)

	url := fmt.Sprintf("%s/%s", user.Data.Links.Spends, spend.Data.ID)
	r = test.Request(suite.T(), http.MethodDelete, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	assert.Empty(suite.T(), getTestUser(suite.T(), user.Data.Links.Self).Spends)

	// The spend is kept
	r = test.Request(suite.T(), http.MethodGet, spend.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestCardSpends() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	card := createTestCard(suite.T(), v1.CardCreate{OwnerID: user.Data.ID})
	spend := createTestSpend(suite.T(), v1.SpendEditable{OwnerID: user.Data.ID})

	r := test.Request(suite.T(), http.MethodPost, card.Data.Links.Spends, v1.SpendReference{SpendID: spend.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	// Spends of other users cannot be paid with the card
	foreign := createTestSpend(suite.T(), v1.SpendEditable{})
	r = test.Request(suite.T(), http.MethodPost, card.Data.Links.Spends, v1.SpendReference{SpendID: foreign.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Contains(suite.T(), r.Body.String(), models.ErrCardNotOwned.Error())

	r = test.Request(suite.T(), http.MethodPost, card.Data.Links.Spends, v1.SpendReference{SpendID: spend.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Contains(suite.T(), r.Body.String(), models.ErrCardSpendExists.Error())

	r = test.Request(suite.T(), http.MethodPost, card.Data.Links.Spends, v1.SpendReference{SpendID: uuid.New()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var list v1.SpendListResponse
	r = test.Request(suite.T(), http.MethodGet, card.Data.Links.Spends, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1)

	url := fmt.Sprintf("%s/%s", card.Data.Links.Spends, spend.Data.ID)
	r = test.Request(suite.T(), http.MethodDelete, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAssociationsOptions() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	card := createTestCard(suite.T(), v1.CardCreate{OwnerID: user.Data.ID})
	id := uuid.New()

	tests := []struct {
		name   string
		url    string
		status int
		allow  string
	}{
		{"User cards", user.Data.Links.Cards, http.StatusNoContent, "OPTIONS, GET, POST"},
		{"User cards, no user", fmt.Sprintf("http://example.com/v1/users/%s/cards", id), http.StatusNotFound, ""},
		{"User card", fmt.Sprintf("%s/%s", user.Data.Links.Cards, card.Data.ID), http.StatusNoContent, "OPTIONS, DELETE"},
		{"User card, invalid card ID", fmt.Sprintf("%s/NotAUUID", user.Data.Links.Cards), http.StatusBadRequest, ""},
		{"User spends", user.Data.Links.Spends, http.StatusNoContent, "OPTIONS, GET, POST"},
		{"User spend", fmt.Sprintf("%s/%s", user.Data.Links.Spends, id), http.StatusNoContent, "OPTIONS, DELETE"},
		{"Card spends", card.Data.Links.Spends, http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Card spends, no card", fmt.Sprintf("http://example.com/v1/cards/%s/spends", id), http.StatusNotFound, ""},
		{"Card spend", fmt.Sprintf("%s/%s", card.Data.Links.Spends, id), http.StatusNoContent, "OPTIONS, DELETE"},
		{"Card spend, invalid spend ID", fmt.Sprintf("%s/NotAUUID", card.Data.Links.Spends), http.StatusBadRequest, ""},
		{"Record spend", user.Data.Links.RecordSpend, http.StatusNoContent, "OPTIONS, POST"},
		{"Record spend, no user", fmt.Sprintf("http://example.com/v1/users/%s/record-spend", id), http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.allow != "" {
				assert.Equal(t, tt.allow, r.Header().Get("allow"))
			}
		})
	}
}
