// Package views assembles the data shown on each screen of the app.
//
// Every view fetches what it needs from a Source concurrently and then
// aggregates it. If any fetch fails, the view fails with ErrDataUnavailable
// and nothing is aggregated.
package views

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/aggregator"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"golang.org/x/sync/errgroup"
)

// ErrDataUnavailable is returned by every view when its data could not be fetched.
// The cause is wrapped.
var ErrDataUnavailable = errors.New("the data could not be loaded, please try again")

// UnknownCard is the label for spends whose card cannot be found.
const UnknownCard = "Unknown Card"

// NoData is the placeholder category shown when there is nothing to chart.
var NoData = aggregator.CategoryTotal{Name: "No Data", Amount: decimal.NewFromInt(1), Color: "#CCCCCC"}

// Source provides the data for the views.
type Source interface {
	User(ctx context.Context, id uuid.UUID) (models.User, error)
	UserSpends(ctx context.Context, id uuid.UUID) ([]models.Spend, error)
	UserCards(ctx context.Context, id uuid.UUID) ([]models.Card, error)
	Card(ctx context.Context, id uuid.UUID) (models.Card, error)
	CardSpends(ctx context.Context, id uuid.UUID) ([]models.Spend, error)
}

// Loader builds views from a Source.
type Loader struct {
	Source Source
}

// LabeledSpend is a spend with the name of the card it was paid with.
type LabeledSpend struct {
	models.Spend
	CardName string `json:"cardName" example:"Everyday"` // Name of the card, or "Unknown Card"
}

// Home is the summary shown on the start screen.
type Home struct {
	User               models.User                `json:"user"`                                          // The user
	Balance            decimal.Decimal            `json:"balance" example:"150000" swaggertype:"string"` // Current balance
	TotalSpent         decimal.Decimal            `json:"totalSpent" example:"48220" swaggertype:"string"`
	MonthTransactions  int                        `json:"monthTransactions" example:"12"` // Number of spends in the current month
	WeeklyTotal        decimal.Decimal            `json:"weeklyTotal" example:"12990" swaggertype:"string"`
	LatestTransactions []LabeledSpend             `json:"latestTransactions"`
	Categories         []aggregator.CategoryTotal `json:"categories"` // All spends by category, unknown categories count as Others
	Cards              []models.Card              `json:"cards"`
}

// Stats is the statistics screen for one month.
type Stats struct {
	Month        types.Month                `json:"month" swaggertype:"string" example:"2024-06"`
	Balance      decimal.Decimal            `json:"balance" example:"150000" swaggertype:"string"`
	MonthTotal   decimal.Decimal            `json:"monthTotal" example:"48220" swaggertype:"string"`
	Spends       []models.Spend             `json:"spends"`     // Spends in the month
	Categories   []aggregator.CategoryTotal `json:"categories"` // Spends in the month by category
	Groups       []aggregator.CategoryGroup `json:"groups"`     // Categories that occur in the month
	MonthlyTotal []aggregator.MonthTotal    `json:"monthlyTotals"`
	ChartMax     decimal.Decimal            `json:"chartMax" example:"1400" swaggertype:"string"` // Upper bound for the monthly chart
}

// CardDetails is the detail screen of a card.
type CardDetails struct {
	Card       models.Card                `json:"card"`
	Masked     string                     `json:"masked" example:"**** **** **** 1234"`
	Total      decimal.Decimal            `json:"total" example:"48220" swaggertype:"string"`
	Categories []aggregator.CategoryTotal `json:"categories"` // Single No Data entry if there are no spends
	Latest     []models.Spend             `json:"latest"`
}

// Transactions are the spends of one category in one month.
type Transactions struct {
	Category string         `json:"category" example:"Food"`
	Month    string         `json:"month" example:"06"`
	Year     string         `json:"year" example:"24"`
	Color    string         `json:"color" example:"#FF6384"`
	Total    decimal.Decimal `json:"total" example:"17582" swaggertype:"string"`
	Spends   []LabeledSpend `json:"spends"`
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
}

// label adds the card name to each spend.
func label(spends []models.Spend, cards []models.Card) []LabeledSpend {
	names := make(map[uuid.UUID]string, len(cards))
	for _, c := range cards {
		names[c.ID] = c.Name
	}

	labeled := make([]LabeledSpend, len(spends))
	for i, s := range spends {
		name, ok := names[s.PaymentCardID]
		if !ok {
			name = UnknownCard
		}
		labeled[i] = LabeledSpend{Spend: s, CardName: name}
	}

	return labeled
}

// Home loads the start screen for the user. now determines the current
// month and week.
func (l Loader) Home(ctx context.Context, userID uuid.UUID, now time.Time) (Home, error) {
	var (
		user   models.User
		spends []models.Spend
		cards  []models.Card
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = l.Source.User(ctx, userID)
		return
	})
	g.Go(func() (err error) {
		spends, err = l.Source.UserSpends(ctx, userID)
		return
	})
	g.Go(func() (err error) {
		cards, err = l.Source.UserCards(ctx, userID)
		return
	})

	if err := g.Wait(); err != nil {
		return Home{}, unavailable(err)
	}

	return Home{
		User:               user,
		Balance:            user.Balance,
		TotalSpent:         aggregator.Total(spends),
		MonthTransactions:  aggregator.CountInMonth(spends, now),
		WeeklyTotal:        aggregator.WeeklyTotal(spends, now),
		LatestTransactions: label(aggregator.Latest(spends, 3), cards),
		Categories:         aggregator.CategoryTotals(spends, aggregator.Categories, aggregator.FoldUnknownInto(aggregator.Others)),
		Cards:              cards,
	}, nil
}

// Stats loads the statistics screen of the user for a month.
func (l Loader) Stats(ctx context.Context, userID uuid.UUID, month types.Month) (Stats, error) {
	var (
		user   models.User
		spends []models.Spend
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = l.Source.User(ctx, userID)
		return
	})
	g.Go(func() (err error) {
		spends, err = l.Source.UserSpends(ctx, userID)
		return
	})

	if err := g.Wait(); err != nil {
		return Stats{}, unavailable(err)
	}

	inMonth := aggregator.FilterByMonth(spends, month.Time())

	// The chart shows the months of the selected year only
	inYear := make([]models.Spend, 0, len(spends))
	for _, s := range spends {
		t, err := s.Date.Time()
		if err == nil && t.Year() == month.Year() {
			inYear = append(inYear, s)
		}
	}
	monthly := aggregator.MonthlyTotals(inYear, aggregator.MonthNames)

	return Stats{
		Month:        month,
		Balance:      user.Balance,
		MonthTotal:   aggregator.Total(inMonth),
		Spends:       inMonth,
		Categories:   aggregator.CategoryTotals(inMonth, aggregator.Categories),
		Groups:       aggregator.CategoryGroups(inMonth, aggregator.DefaultPalette()),
		MonthlyTotal: monthly,
		ChartMax:     aggregator.ChartMax(monthly),
	}, nil
}

// CardDetails loads the detail screen of a card.
func (l Loader) CardDetails(ctx context.Context, cardID uuid.UUID) (CardDetails, error) {
	var (
		card   models.Card
		spends []models.Spend
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		card, err = l.Source.Card(ctx, cardID)
		return
	})
	g.Go(func() (err error) {
		spends, err = l.Source.CardSpends(ctx, cardID)
		return
	})

	if err := g.Wait(); err != nil {
		return CardDetails{}, unavailable(err)
	}

	categories := aggregator.CategoryTotals(spends, aggregator.Categories)
	if aggregator.IsEmpty(categories) {
		categories = []aggregator.CategoryTotal{NoData}
	}

	return CardDetails{
		Card:       card,
		Masked:     card.Masked(),
		Total:      aggregator.Total(spends),
		Categories: categories,
		Latest:     aggregator.Latest(spends, 5),
	}, nil
}

// Transactions loads the spends of the user in one category and month.
// month and year are the two-digit components as they appear in spend dates.
func (l Loader) Transactions(ctx context.Context, userID uuid.UUID, category, month, year string) (Transactions, error) {
	var (
		spends []models.Spend
		cards  []models.Card
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		spends, err = l.Source.UserSpends(ctx, userID)
		return
	})
	g.Go(func() (err error) {
		cards, err = l.Source.UserCards(ctx, userID)
		return
	})

	if err := g.Wait(); err != nil {
		return Transactions{}, unavailable(err)
	}

	filtered := aggregator.FilterByCategoryAndMonth(spends, category, month, year)

	return Transactions{
		Category: category,
		Month:    month,
		Year:     year,
		Color:    aggregator.DefaultPalette().Color(category),
		Total:    aggregator.Total(filtered),
		Spends:   label(filtered, cards),
	}, nil
}
