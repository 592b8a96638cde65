// Package events publishes spend lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Type string

const (
	SpendCreated  Type = "spend.created"
	SpendRecorded Type = "spend.recorded"
	SpendDeleted  Type = "spend.deleted"
	CardDeleted   Type = "card.deleted"
	BalanceSet    Type = "user.balance_set"
)

type Event struct {
	Type    Type            `json:"type"`
	Time    time.Time       `json:"time"`
	UserID  uuid.UUID       `json:"userId"`
	CardID  uuid.UUID       `json:"cardId"`
	SpendID uuid.UUID       `json:"spendId"`
	Amount  decimal.Decimal `json:"amount"`
}

func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher sends events to their consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards all events.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

var (
	mu        sync.RWMutex
	publisher Publisher = Noop{}
)

// SetPublisher sets the publisher used by Publish and returns the previous one.
func SetPublisher(p Publisher) Publisher {
	mu.Lock()
	defer mu.Unlock()

	previous := publisher
	publisher = p
	return previous
}

// Publish sends the event with the configured publisher. The time is set
// if it is zero.
//
// Events are informational. A failure is logged and never returned to the caller.
func Publish(ctx context.Context, e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	mu.RLock()
	p := publisher
	mu.RUnlock()

	if err := p.Publish(ctx, e); err != nil {
		log.Error().Err(err).Str("type", string(e.Type)).Str("spend", e.SpendID.String()).Msg("publishing event failed")
	}
}

// Recorder keeps all published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Event(nil), r.events...)
}
