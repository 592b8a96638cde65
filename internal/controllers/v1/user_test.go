package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, u v1.UserEditable, expectedStatus ...int) v1.UserResponse {
	if u.Name == "" {
		u.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.UserEditable{u}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/users", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var user v1.UserCreateResponse
	test.DecodeResponse(t, &r, &user)

	if r.Code == http.StatusCreated {
		return user.Data[0]
	}

	return v1.UserResponse{}
}

func getTestUser(t *testing.T, url string) v1.User {
	r := test.Request(t, http.MethodGet, url, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var user v1.UserResponse
	test.DecodeResponse(t, &r, &user)

	return *user.Data
}

func (suite *TestSuiteStandard) TestUsersCreate() {
	u := createTestUser(suite.T(), v1.UserEditable{Name: "  Alejandra ", Balance: decimal.NewFromInt(150000)})

	assert.Equal(suite.T(), "Alejandra", u.Data.Name)
	assert.True(suite.T(), decimal.NewFromInt(150000).Equal(u.Data.Balance))
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/users/%s", u.Data.ID), u.Data.Links.Self)
	assert.Equal(suite.T(), u.Data.Links.Self+"/record-spend", u.Data.Links.RecordSpend)
	assert.Empty(suite.T(), u.Data.Cards)
	assert.Empty(suite.T(), u.Data.Spends)
}

func (suite *TestSuiteStandard) TestUsersCreateFails() {
	tests := []struct {
		name     string
		body     any
		status   int
		testFunc func(t *testing.T, r v1.UserCreateResponse)
	}{
		{
			"Broken Body", `[{ "name": 2 }]`, http.StatusBadRequest,
			func(t *testing.T, r v1.UserCreateResponse) {
				assert.Contains(t, *r.Error, "cannot unmarshal number")
			},
		},
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, r v1.UserCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *r.Error)
			},
		},
		{
			"Empty name", `[{ "name": "   " }]`, http.StatusBadRequest,
			func(t *testing.T, r v1.UserCreateResponse) {
				assert.Equal(t, models.ErrUserNameEmpty.Error(), *r.Data[0].Error)
			},
		},
		{
			"One of two fails", `[{ "name": "Ana" }, { "name": "" }]`, http.StatusBadRequest,
			func(t *testing.T, r v1.UserCreateResponse) {
				require.Len(t, r.Data, 2)
				assert.Equal(t, "Ana", r.Data[0].Data.Name)
				assert.Nil(t, r.Data[1].Data)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/users", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.UserCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

// TestUsersDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestUsersDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestUser(t, v1.UserEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/users", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.UserListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No User with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"User exists", createTestUser(suite.T(), v1.UserEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/users/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestUsersGetSingle() {
	u := createTestUser(suite.T(), v1.UserEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing User", u.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No User with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No User with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/users/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersGetFilter() {
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "Alejandra"})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "Alex"})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "Bruno"})

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 3, 3},
		{"Fuzzy name", "name=Ale", 2, 2},
		{"Exact name", "name=Bruno", 1, 1},
		{"No match", "name=Carla", 0, 0},
		{"Offset 2", "offset=2", 1, 3},
		{"Offset 0, limit 2", "offset=0&limit=2", 2, 3},
		{"Limit 0", "limit=0", 0, 3},
		{"Limit -1", "limit=-1", 3, 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.UserListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/users?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data))
			assert.Equal(t, tt.total, re.Pagination.Total)
		})
	}

	suite.T().Run("Sorted by name", func(t *testing.T) {
		var re v1.UserListResponse
		r := test.Request(t, http.MethodGet, "http://example.com/v1/users", "")
		test.DecodeResponse(t, &r, &re)

		require.Len(t, re.Data, 3)
		assert.Equal(t, "Alejandra", re.Data[0].Name)
		assert.Equal(t, "Alex", re.Data[1].Name)
		assert.Equal(t, "Bruno", re.Data[2].Name)
	})

	suite.T().Run("Invalid query", func(t *testing.T) {
		r := test.Request(t, http.MethodGet, "http://example.com/v1/users?limit=many", "")
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
	})
}

func (suite *TestSuiteStandard) TestUsersUpdate() {
	u := createTestUser(suite.T(), v1.UserEditable{Name: "Before", Balance: decimal.NewFromInt(1000)})

	tests := []struct {
		name     string
		body     map[string]any
		event    bool
		testFunc func(t *testing.T, u v1.UserResponse)
	}{
		{
			"Name",
			map[string]any{"name": "After"},
			false,
			func(t *testing.T, u v1.UserResponse) {
				assert.Equal(t, "After", u.Data.Name)
				assert.True(t, decimal.NewFromInt(1000).Equal(u.Data.Balance))
			},
		},
		{
			"Balance",
			map[string]any{"balance": "250000.5"},
			true,
			func(t *testing.T, u v1.UserResponse) {
				assert.True(t, decimal.RequireFromString("250000.5").Equal(u.Data.Balance))
			},
		},
		{
			"Balance to zero",
			map[string]any{"balance": 0},
			true,
			func(t *testing.T, u v1.UserResponse) {
				assert.True(t, u.Data.Balance.IsZero())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			before := len(suite.events.Events())

			r := test.Request(t, http.MethodPatch, u.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.UserResponse
			test.DecodeResponse(t, &r, &response)
			tt.testFunc(t, response)

			// The change must be persisted
			persisted := getTestUser(t, u.Data.Links.Self)
			assert.Equal(t, response.Data.Name, persisted.Name)
			assert.True(t, response.Data.Balance.Equal(persisted.Balance))

			published := suite.events.Events()[before:]
			if tt.event {
				require.Len(t, published, 1)
				assert.Equal(t, events.BalanceSet, published[0].Type)
				assert.Equal(t, u.Data.ID, published[0].UserID)
			} else {
				assert.Len(t, published, 0)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestUsersUpdateFails() {
	u := createTestUser(suite.T(), v1.UserEditable{Name: "Unchanged"})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Invalid body", `{ "name": 2 }`, http.StatusBadRequest},
		{"Broken JSON", `{ "name": `, http.StatusBadRequest},
		{"Empty name", `{ "name": "" }`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, u.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			assert.Equal(t, "Unchanged", getTestUser(t, u.Data.Links.Self).Name)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersDelete() {
	u := createTestUser(suite.T(), v1.UserEditable{})
	c := createTestCard(suite.T(), v1.CardCreate{OwnerID: u.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, u.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, u.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The card is kept
	r = test.Request(suite.T(), http.MethodGet, c.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}
