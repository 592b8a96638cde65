package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrUserNameEmpty = errors.New("the name of the user must not be empty")
)

var (
	ErrCardNameEmpty   = errors.New("the name of the card must not be empty")
	ErrCardTypeInvalid = errors.New("the card type must be one of MASTERCARD or VISA")
	ErrCardNotOwned    = errors.New("the card is not associated with the user")
)

var (
	ErrSpendNameEmpty      = errors.New("the name of the spend must not be empty")
	ErrSpendAmountNegative = errors.New("the amount of a spend must not be negative")
	ErrSpendOwnerMismatch  = errors.New("the spend belongs to a different user")
)

var (
	ErrUserCardExists  = errors.New("the card is already associated with the user")
	ErrUserSpendExists = errors.New("the spend is already associated with the user")
	ErrCardSpendExists = errors.New("the spend is already associated with the card")
)
