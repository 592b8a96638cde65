package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Spend is a single recorded expense.
type Spend struct {
	DefaultModel
	Name          string          `json:"name" example:"Groceries"`                                                // Name of the spend
	Date          types.SpendDate `json:"date" example:"14-06-24" swaggertype:"string"`                            // Day of the spend in DD-MM-YY format
	Category      string          `json:"category" example:"Food"`                                                 // Category of the spend
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"12990" swaggertype:"string"` // Amount of the spend, never negative
	OwnerID       uuid.UUID       `json:"owner" example:"0a1b0e4f-0a4e-4b0a-a91f-1f5e8ff3c0a0"`                    // ID of the user owning the spend
	PaymentCardID uuid.UUID       `json:"paymentCard" example:"7d5b4b11-4c8b-4a8b-8d6b-1f6e7e4b6e2a"`              // ID of the card used for the spend
}

// BeforeSave trims whitespace and validates the spend.
func (s *Spend) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Category = strings.TrimSpace(s.Category)

	if s.Name == "" {
		return ErrSpendNameEmpty
	}

	if s.Amount.IsNegative() {
		return ErrSpendAmountNegative
	}

	if _, err := s.Date.Time(); err != nil {
		return err
	}

	return nil
}

// BeforeCreate verifies that the referenced owner and card exist and that
// the card belongs to the owner.
func (s *Spend) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	if err := tx.First(&User{}, s.OwnerID).Error; err != nil {
		return err
	}

	if s.PaymentCardID == uuid.Nil {
		return nil
	}

	if err := tx.First(&Card{}, s.PaymentCardID).Error; err != nil {
		return err
	}

	return cardOwned(tx, s.OwnerID, s.PaymentCardID)
}

// Delete deletes the spend and removes it from its user and card.
func (s Spend) Delete(db *gorm.DB) error {
	return transaction(db, func(tx *gorm.DB) error {
		if err := tx.Where("spend_id = ?", s.ID).Delete(&UserSpend{}).Error; err != nil {
			return err
		}

		if err := tx.Where("spend_id = ?", s.ID).Delete(&CardSpend{}).Error; err != nil {
			return err
		}

		return tx.Delete(&s).Error
	})
}
