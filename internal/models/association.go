package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserCard associates a card with a user.
type UserCard struct {
	UserID    uuid.UUID `gorm:"primaryKey"`
	CardID    uuid.UUID `gorm:"primaryKey"`
	CreatedAt time.Time
}

// BeforeCreate verifies that both sides of the association exist.
func (a *UserCard) BeforeCreate(tx *gorm.DB) error {
	if err := tx.First(&User{}, a.UserID).Error; err != nil {
		return err
	}

	return tx.First(&Card{}, a.CardID).Error
}

// UserSpend associates a spend with a user.
type UserSpend struct {
	UserID    uuid.UUID `gorm:"primaryKey"`
	SpendID   uuid.UUID `gorm:"primaryKey"`
	CreatedAt time.Time
}

// BeforeCreate verifies that both sides of the association exist.
func (a *UserSpend) BeforeCreate(tx *gorm.DB) error {
	if err := tx.First(&User{}, a.UserID).Error; err != nil {
		return err
	}

	return tx.First(&Spend{}, a.SpendID).Error
}

// CardSpend associates a spend with the card it was paid with.
type CardSpend struct {
	CardID    uuid.UUID `gorm:"primaryKey"`
	SpendID   uuid.UUID `gorm:"primaryKey"`
	CreatedAt time.Time
}

// BeforeCreate verifies that both sides of the association exist and that
// the owner of the spend holds the card.
func (a *CardSpend) BeforeCreate(tx *gorm.DB) error {
	if err := tx.First(&Card{}, a.CardID).Error; err != nil {
		return err
	}

	var spend Spend
	if err := tx.First(&spend, a.SpendID).Error; err != nil {
		return err
	}

	return cardOwned(tx, spend.OwnerID, a.CardID)
}

// cardOwned returns ErrCardNotOwned unless the card is associated with the user.
func cardOwned(tx *gorm.DB, userID, cardID uuid.UUID) error {
	err := tx.Where("user_id = ? AND card_id = ?", userID, cardID).First(&UserCard{}).Error
	if errors.Is(err, ErrResourceNotFound) {
		return ErrCardNotOwned
	}

	return err
}

// Unlink removes an association. a must be a pointer to one of
// UserCard, UserSpend or CardSpend with both keys set.
func Unlink(db *gorm.DB, a any) error {
	var query *gorm.DB
	var name string

	switch v := a.(type) {
	case *UserCard:
		query, name = db.Where("user_id = ? AND card_id = ?", v.UserID, v.CardID), "user card"
	case *UserSpend:
		query, name = db.Where("user_id = ? AND spend_id = ?", v.UserID, v.SpendID), "user spend"
	case *CardSpend:
		query, name = db.Where("card_id = ? AND spend_id = ?", v.CardID, v.SpendID), "card spend"
	default:
		return fmt.Errorf("cannot unlink %T", a)
	}

	result := query.Delete(a)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w %s association matching your query", ErrResourceNotFound, name)
	}

	return nil
}

// transaction runs fn in a database transaction.
//
// Errors that occur before the transaction starts do not pass through the
// callbacks and are translated here.
func transaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.Transaction(fn)
	if err != nil && err.Error() == "sql: database is closed" {
		return ErrGeneral
	}

	return err
}

// CreateCard creates the card and associates it with the user in a
// single transaction.
func (u User) CreateCard(db *gorm.DB, card *Card) error {
	return transaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(card).Error; err != nil {
			return err
		}

		return tx.Create(&UserCard{UserID: u.ID, CardID: card.ID}).Error
	})
}
