package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordSpend records a spend for the user in a single transaction.
//
// The spend is created, associated with the user and with its payment card,
// and its amount is subtracted from the user's balance. Either all of these
// changes are committed or none.
//
// The payment card, if set, must be associated with the user.
func (u *User) RecordSpend(db *gorm.DB, spend *Spend) error {
	if spend.OwnerID == uuid.Nil {
		spend.OwnerID = u.ID
	}

	if spend.OwnerID != u.ID {
		return ErrSpendOwnerMismatch
	}

	return transaction(db, func(tx *gorm.DB) error {
		// An unknown card is reported as not owned
		if spend.PaymentCardID != uuid.Nil {
			if err := cardOwned(tx, u.ID, spend.PaymentCardID); err != nil {
				return err
			}
		}

		if err := tx.Create(spend).Error; err != nil {
			return err
		}

		if err := tx.Create(&UserSpend{UserID: u.ID, SpendID: spend.ID}).Error; err != nil {
			return err
		}

		if spend.PaymentCardID != uuid.Nil {
			if err := tx.Create(&CardSpend{CardID: spend.PaymentCardID, SpendID: spend.ID}).Error; err != nil {
				return err
			}
		}

		// The balance must be read inside the transaction
		var current User
		if err := tx.First(&current, u.ID).Error; err != nil {
			return err
		}

		balance := current.Balance.Sub(spend.Amount)
		if err := tx.Model(&current).Update("balance", balance).Error; err != nil {
			return err
		}

		u.Balance = balance
		return nil
	})
}
