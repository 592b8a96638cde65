package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"gorm.io/gorm"
)

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Name    string          `json:"name" example:"Alejandra"`                      // Name of the user
	Balance decimal.Decimal `json:"balance" example:"150000" swaggertype:"string"` // Current balance. Setting it replaces the balance
}

func (editable UserEditable) model() models.User {
	return models.User{
		Name:    editable.Name,
		Balance: editable.Balance,
	}
}

type UserLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/users/9b2f1ab2-4f31-4b3e-9f58-31c2d0b5e6f1"`                      // The user itself
	Cards        string `json:"cards" example:"https://example.com/api/v1/users/9b2f1ab2-4f31-4b3e-9f58-31c2d0b5e6f1/cards"`               // Cards of the user
	Spends       string `json:"spends" example:"https://example.com/api/v1/users/9b2f1ab2-4f31-4b3e-9f58-31c2d0b5e6f1/spends"`             // Spends of the user
	RecordSpend  string `json:"recordSpend" example:"https://example.com/api/v1/users/9b2f1ab2-4f31-4b3e-9f58-31c2d0b5e6f1/record-spend"`  // Record a spend for the user
	Summary      string `json:"summary" example:"https://example.com/api/v1/users/9b2f1ab2-4f31-4b3e-9f58-31c2d0b5e6f1/summary"`           // Home screen summary
	Stats        string `json:"stats" example:"https://example.com/api/v1/users/9b2f1ab2-4f31-4b3e-9f58-31c2d0b5e6f1/stats"`               // Monthly statistics
	Transactions string `json:"transactions" example:"https://example.com/api/v1/users/9b2f1ab2-4f31-4b3e-9f58-31c2d0b5e6f1/transactions"` // Spends of one category in one month
	Export       string `json:"export" example:"https://example.com/api/v1/users/9b2f1ab2-4f31-4b3e-9f58-31c2d0b5e6f1/export"`             // xlsx export of all spends
}

type User struct {
	models.DefaultModel
	UserEditable
	Links UserLinks `json:"links"`

	// These fields are computed
	Cards  []uuid.UUID `json:"cards"`  // IDs of the cards of the user
	Spends []uuid.UUID `json:"spends"` // IDs of the spends of the user
}

func newUser(c *gin.Context, db *gorm.DB, model models.User) (User, error) {
	url := fmt.Sprintf("%s/v1/users/%s", c.GetString(string(models.DBContextURL)), model.ID)

	user := User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Name:    model.Name,
			Balance: model.Balance,
		},
		Links: UserLinks{
			Self:         url,
			Cards:        url + "/cards",
			Spends:       url + "/spends",
			RecordSpend:  url + "/record-spend",
			Summary:      url + "/summary",
			Stats:        url + "/stats",
			Transactions: url + "/transactions",
			Export:       url + "/export",
		},
		Cards:  make([]uuid.UUID, 0),
		Spends: make([]uuid.UUID, 0),
	}

	cards, err := model.Cards(db)
	if err != nil {
		return User{}, err
	}

	for _, card := range cards {
		user.Cards = append(user.Cards, card.ID)
	}

	spends, err := model.Spends(db)
	if err != nil {
		return User{}, err
	}

	for _, spend := range spends {
		user.Spends = append(user.Spends, spend.ID)
	}

	return user, nil
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                          // List of users
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UserCreateResponse struct {
	Data  []UserResponse `json:"data"`                                                          // List of the created users or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (u *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	u.Data = append(u.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the user
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
