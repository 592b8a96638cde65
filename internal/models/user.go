package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is a person tracking their spends.
type User struct {
	DefaultModel
	Name    string          `json:"name" example:"Alejandra"`                                   // Name of the user
	Balance decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)" example:"150000" swaggertype:"string"` // Current account balance
}

// BeforeSave trims whitespace from the name and verifies it is set.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		return ErrUserNameEmpty
	}

	return nil
}

// Cards returns all cards associated with the user, in the order
// in which they were associated.
func (u User) Cards(db *gorm.DB) ([]Card, error) {
	var cards []Card
	err := db.
		Joins("JOIN user_cards ON user_cards.card_id = cards.id").
		Where("user_cards.user_id = ?", u.ID).
		Order("user_cards.created_at ASC").
		Find(&cards).Error
	if err != nil {
		return []Card{}, err
	}

	return cards, nil
}

// Spends returns all spends associated with the user, in the order
// in which they were associated.
func (u User) Spends(db *gorm.DB) ([]Spend, error) {
	var spends []Spend
	err := db.
		Joins("JOIN user_spends ON user_spends.spend_id = spends.id").
		Where("user_spends.user_id = ?", u.ID).
		Order("user_spends.created_at ASC").
		Find(&spends).Error
	if err != nil {
		return []Spend{}, err
	}

	return spends, nil
}

// Delete deletes the user and all of its associations. Cards and spends
// themselves are kept.
func (u User) Delete(db *gorm.DB) error {
	return transaction(db, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", u.ID).Delete(&UserCard{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", u.ID).Delete(&UserSpend{}).Error; err != nil {
			return err
		}

		return tx.Delete(&u).Error
	})
}
