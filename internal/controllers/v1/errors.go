package v1

import (
	"errors"
	"net/http"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/views"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, views.ErrDataUnavailable) {
		return http.StatusServiceUnavailable
	}

	return http.StatusBadRequest
}

var (
	errOwnerNotSet   = errors.New("the owner must be set")
	errCardIDNotSet  = errors.New("the cardId must be set")
	errSpendIDNotSet = errors.New("the spendId must be set")
)
