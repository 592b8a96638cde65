package models

import (
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CardType is the payment scheme of a card.
type CardType string

const (
	CardTypeMastercard CardType = "MASTERCARD"
	CardTypeVisa       CardType = "VISA"
)

// CardTypes lists all supported card types.
var CardTypes = []CardType{CardTypeMastercard, CardTypeVisa}

// Card is a payment card used to pay for spends.
type Card struct {
	DefaultModel
	Name           string   `json:"name" example:"Everyday"`                // Name of the card
	Type           CardType `json:"type" example:"MASTERCARD"`              // Payment scheme
	Number         string   `json:"number" example:"5555 4444 3333 1234"`   // Card number as entered
	ExpirationDate string   `json:"expirationDate" example:"08/27"`         // Expiration date as printed on the card
	CVV            string   `json:"-"`                                      // Never returned
}

// BeforeSave trims whitespace from all strings and validates the card.
func (c *Card) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Number = strings.TrimSpace(c.Number)
	c.ExpirationDate = strings.TrimSpace(c.ExpirationDate)
	c.CVV = strings.TrimSpace(c.CVV)

	if c.Name == "" {
		return ErrCardNameEmpty
	}

	if !slices.Contains(CardTypes, c.Type) {
		return ErrCardTypeInvalid
	}

	return nil
}

// LastFour returns the last four digits of the card number.
// Non-digit characters in the number are ignored.
func (c Card) LastFour() string {
	digits := make([]rune, 0, len(c.Number))
	for _, r := range c.Number {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}

	if len(digits) <= 4 {
		return string(digits)
	}

	return string(digits[len(digits)-4:])
}

// Masked returns the card number with all but the last four digits hidden.
func (c Card) Masked() string {
	return "**** **** **** " + c.LastFour()
}

// Spends returns all spends associated with the card, in the order
// in which they were associated.
func (c Card) Spends(db *gorm.DB) ([]Spend, error) {
	var spends []Spend
	err := db.
		Joins("JOIN card_spends ON card_spends.spend_id = spends.id").
		Where("card_spends.card_id = ?", c.ID).
		Order("card_spends.created_at ASC").
		Find(&spends).Error
	if err != nil {
		return []Spend{}, err
	}

	return spends, nil
}

// Delete deletes the card and removes it from all users and its spends
// from the card.
func (c Card) Delete(db *gorm.DB) error {
	return transaction(db, func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", c.ID).Delete(&UserCard{}).Error; err != nil {
			return err
		}

		if err := tx.Where("card_id = ?", c.ID).Delete(&CardSpend{}).Error; err != nil {
			return err
		}

		return tx.Delete(&c).Error
	})
}
