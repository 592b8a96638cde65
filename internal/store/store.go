// Package store reads users, cards and spends from the database for the views.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/models"
	"gorm.io/gorm"
)

// Store implements views.Source on a gorm database.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) Store {
	return Store{db: db}
}

func (s Store) User(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	return user, err
}

// UserSpends returns the spends associated with the user.
// It fails with models.ErrResourceNotFound if the user does not exist.
func (s Store) UserSpends(ctx context.Context, id uuid.UUID) ([]models.Spend, error) {
	user, err := s.User(ctx, id)
	if err != nil {
		return nil, err
	}

	return user.Spends(s.db.WithContext(ctx))
}

// UserCards returns the cards associated with the user.
// It fails with models.ErrResourceNotFound if the user does not exist.
func (s Store) UserCards(ctx context.Context, id uuid.UUID) ([]models.Card, error) {
	user, err := s.User(ctx, id)
	if err != nil {
		return nil, err
	}

	return user.Cards(s.db.WithContext(ctx))
}

func (s Store) Card(ctx context.Context, id uuid.UUID) (models.Card, error) {
	var card models.Card
	err := s.db.WithContext(ctx).First(&card, id).Error
	return card, err
}

// CardSpends returns the spends associated with the card.
// It fails with models.ErrResourceNotFound if the card does not exist.
func (s Store) CardSpends(ctx context.Context, id uuid.UUID) ([]models.Spend, error) {
	card, err := s.Card(ctx, id)
	if err != nil {
		return nil, err
	}

	return card.Spends(s.db.WithContext(ctx))
}
