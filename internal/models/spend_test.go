package models_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSpendValidation() {
	user := suite.createTestUser(models.User{})

	tests := []struct {
		name  string
		spend models.Spend
		err   error
	}{
		{"Negative amount", models.Spend{Name: "Refund", Date: "01-02-24", Amount: decimal.NewFromInt(-5), OwnerID: user.ID}, models.ErrSpendAmountNegative},
		{"Empty name", models.Spend{Name: " ", Date: "01-02-24", OwnerID: user.ID}, models.ErrSpendNameEmpty},
		{"Legacy date", models.Spend{Name: "Bus", Date: "01/02/2024", OwnerID: user.ID}, types.ErrSpendDateFormat},
		{"Unknown owner", models.Spend{Name: "Bus", Date: "01-02-24", OwnerID: uuid.New()}, models.ErrResourceNotFound},
		{"Unknown card", models.Spend{Name: "Bus", Date: "01-02-24", OwnerID: user.ID, PaymentCardID: uuid.New()}, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.spend).Error
			assert.ErrorIs(suite.T(), err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestSpendCardOfAnotherUser() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	card := suite.createOwnedCard(other)

	err := models.DB.Create(&models.Spend{Name: "Bus", Date: "01-02-24", OwnerID: user.ID, PaymentCardID: card.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCardNotOwned)

	// The owner of the card may use it
	suite.Require().Nil(models.DB.Create(&models.Spend{Name: "Bus", Date: "01-02-24", OwnerID: other.ID, PaymentCardID: card.ID}).Error)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Spend{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestSpendZeroAmount() {
	user := suite.createTestUser(models.User{})

	spend := models.Spend{Name: "Free sample", Date: "01-02-24", Category: "Food", OwnerID: user.ID}
	suite.Require().Nil(models.DB.Create(&spend).Error)
	assert.True(suite.T(), spend.Amount.IsZero())
	assert.NotEqual(suite.T(), uuid.Nil, spend.ID)
}

func (suite *TestSuiteStandard) TestSpendDeleteRemovesAssociations() {
	user := suite.createTestUser(models.User{})
	card := suite.createOwnedCard(user)
	spend := suite.createTestSpend(models.Spend{OwnerID: user.ID, PaymentCardID: card.ID})

	suite.Require().Nil(models.DB.Create(&models.UserSpend{UserID: user.ID, SpendID: spend.ID}).Error)
	suite.Require().Nil(models.DB.Create(&models.CardSpend{CardID: card.ID, SpendID: spend.ID}).Error)

	suite.Require().Nil(spend.Delete(models.DB))

	spends, err := user.Spends(models.DB)
	suite.Require().Nil(err)
	assert.Len(suite.T(), spends, 0)

	spends, err = card.Spends(models.DB)
	suite.Require().Nil(err)
	assert.Len(suite.T(), spends, 0)

	err = models.DB.First(&models.Spend{}, spend.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "there is no spend matching your query")
}

func (suite *TestSuiteStandard) TestSpendDBClosed() {
	user := suite.createTestUser(models.User{})
	suite.CloseDB()

	err := models.DB.Create(&models.Spend{Name: "Bus", Date: "01-02-24", OwnerID: user.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
