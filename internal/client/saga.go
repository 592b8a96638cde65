package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
)

// Step is one step of recording a spend.
type Step string

const (
	StepLoadUser   Step = "load user"
	StepCreate     Step = "create spend"
	StepLinkUser   Step = "link spend to user"
	StepLinkCard   Step = "link spend to card"
	StepSetBalance Step = "set balance"
)

// SagaError is returned by RecordSpend when a step failed.
//
// Compensation holds the errors of undoing the completed steps. If it is
// empty, nothing of the spend is left behind.
type SagaError struct {
	Step         Step
	Err          error
	Compensation []error
}

func (e *SagaError) Error() string {
	msg := fmt.Sprintf("recording spend failed at %q: %v", e.Step, e.Err)
	if len(e.Compensation) == 0 {
		return msg
	}

	undo := make([]string, 0, len(e.Compensation))
	for _, err := range e.Compensation {
		undo = append(undo, err.Error())
	}

	return fmt.Sprintf("%s; undoing failed: %s", msg, strings.Join(undo, "; "))
}

func (e *SagaError) Unwrap() error {
	return e.Err
}

// Compensated reports whether all completed steps were undone.
func (e *SagaError) Compensated() bool {
	return len(e.Compensation) == 0
}

// RecordSpend records a spend for the user with separate requests: it creates
// the spend, links it to the user and to its payment card and sets the new
// balance. It returns the spend with its ID and the new balance.
//
// When a step fails, the completed steps are undone in reverse order and a
// *SagaError is returned. Use the record-spend endpoint of the API where
// available, it does all of this in one transaction.
func (c *Client) RecordSpend(ctx context.Context, userID uuid.UUID, spend models.Spend) (models.Spend, decimal.Decimal, error) {
	if spend.OwnerID == uuid.Nil {
		spend.OwnerID = userID
	}

	if spend.OwnerID != userID {
		return models.Spend{}, decimal.Zero, &SagaError{Step: StepLoadUser, Err: models.ErrSpendOwnerMismatch}
	}

	user, err := c.User(ctx, userID)
	if err != nil {
		return models.Spend{}, decimal.Zero, &SagaError{Step: StepLoadUser, Err: err}
	}

	var undo []func(context.Context) error
	fail := func(step Step, err error) error {
		// Undoing must happen even if ctx is what made the step fail
		undoCtx := context.WithoutCancel(ctx)

		sagaErr := &SagaError{Step: step, Err: err}
		for i := len(undo) - 1; i >= 0; i-- {
			if err := undo[i](undoCtx); err != nil {
				sagaErr.Compensation = append(sagaErr.Compensation, err)
			}
		}

		log.Error().Err(sagaErr).Str("user", userID.String()).Bool("compensated", sagaErr.Compensated()).Msg("recording spend failed")
		return sagaErr
	}

	spend.ID, err = c.CreateSpend(ctx, spend)
	if err != nil {
		return models.Spend{}, decimal.Zero, fail(StepCreate, err)
	}
	undo = append(undo, func(ctx context.Context) error {
		return c.DeleteSpend(ctx, spend.ID)
	})

	if err := c.AddSpendToUser(ctx, userID, spend.ID); err != nil {
		return models.Spend{}, decimal.Zero, fail(StepLinkUser, err)
	}
	undo = append(undo, func(ctx context.Context) error {
		return ignoreNotFound(c.RemoveSpendFromUser(ctx, userID, spend.ID))
	})

	if spend.PaymentCardID != uuid.Nil {
		if err := c.AddSpendToCard(ctx, spend.PaymentCardID, spend.ID); err != nil {
			return models.Spend{}, decimal.Zero, fail(StepLinkCard, err)
		}
		undo = append(undo, func(ctx context.Context) error {
			return ignoreNotFound(c.RemoveSpendFromCard(ctx, spend.PaymentCardID, spend.ID))
		})
	}

	balance := user.Balance.Sub(spend.Amount)
	if err := c.SetBalance(ctx, userID, balance); err != nil {
		return models.Spend{}, decimal.Zero, fail(StepSetBalance, err)
	}

	return spend, balance, nil
}

// ignoreNotFound treats an association that is already gone as removed.
func ignoreNotFound(err error) error {
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil
	}
	return err
}
