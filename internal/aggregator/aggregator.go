// Package aggregator turns lists of spends into the aggregates shown to
// users: monthly totals, category totals and groups, and filtered views.
//
// All functions are pure. They never modify their input and never fail.
// Spends whose date is not in the canonical DD-MM-YY format are left out of
// every aggregate that needs a date.
package aggregator

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"golang.org/x/exp/slices"
)

// MonthNames are the labels of the twelve calendar months, in calendar order.
var MonthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// chartStep is the granularity of the Y axis of the monthly chart.
var chartStep = decimal.NewFromInt(200)

// MonthTotal is the sum of spends in one calendar month.
type MonthTotal struct {
	Month  string          `json:"month" example:"Jun"`                          // Month label
	Amount decimal.Decimal `json:"amount" example:"1200" swaggertype:"string"` // Sum of the rounded amounts
}

// MonthlyTotals buckets spends by calendar month.
//
// months are the labels for the twelve calendar months in calendar order,
// usually MonthNames. The result has exactly one entry per label, in label
// order, even if no spend falls into a month. The year of a spend is not
// considered, callers filter by year beforehand if needed.
//
// Each amount is rounded half-up to a whole unit before it is added.
func MonthlyTotals(spends []models.Spend, months []string) []MonthTotal {
	totals := make([]MonthTotal, len(months))
	for i, m := range months {
		totals[i] = MonthTotal{Month: m, Amount: decimal.Zero}
	}

	for _, s := range spends {
		t, err := s.Date.Time()
		if err != nil {
			continue
		}

		i := int(t.Month()) - 1
		if i >= len(totals) {
			continue
		}

		totals[i].Amount = totals[i].Amount.Add(s.Amount.Round(0))
	}

	return totals
}

// ChartMax returns the upper bound of the Y axis for charting the totals:
// the largest amount rounded up to the next multiple of 200.
func ChartMax(totals []MonthTotal) decimal.Decimal {
	highest := decimal.Zero
	for _, t := range totals {
		if t.Amount.GreaterThan(highest) {
			highest = t.Amount
		}
	}

	return highest.Div(chartStep).Ceil().Mul(chartStep)
}

// day returns the calendar day of t, in the location of t, as midnight UTC.
// This is how SpendDate.Time represents spend dates.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FilterByMonth returns the spends in the month and year of reference,
// in their original order. The month is taken in the location of reference.
func FilterByMonth(spends []models.Spend, reference time.Time) []models.Spend {
	filtered := make([]models.Spend, 0)
	for _, s := range spends {
		t, err := s.Date.Time()
		if err != nil {
			continue
		}

		if t.Month() == reference.Month() && t.Year() == reference.Year() {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

// FilterByCategoryAndMonth returns the spends with exactly the given category
// whose date has exactly the given two-digit month and year components,
// in their original order.
//
// The comparison is textual: month "03" matches, "3" does not. Dates that
// are not calendar dates, such as 31-02-24, are left out.
func FilterByCategoryAndMonth(spends []models.Spend, category, month, year string) []models.Spend {
	filtered := make([]models.Spend, 0)
	for _, s := range spends {
		if s.Category != category {
			continue
		}

		_, m, y, ok := s.Date.Parts()
		if !ok || !s.Date.Valid() {
			continue
		}

		if m == month && y == year {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

// WeeklyTotal sums the spends dated within the last seven days before now,
// both ends included.
//
// Dates have no time of day, so the comparison is by calendar day, taken
// in the location of now like FilterByMonth does: a spend from exactly
// seven days ago counts, one from the day after now does not.
func WeeklyTotal(spends []models.Spend, now time.Time) decimal.Decimal {
	today := day(now)
	start := today.AddDate(0, 0, -7)

	total := decimal.Zero
	for _, s := range spends {
		t, err := s.Date.Time()
		if err != nil {
			continue
		}

		if t.Before(start) || t.After(today) {
			continue
		}

		total = total.Add(s.Amount)
	}

	return total
}

// Total sums the amounts of all spends, whether their date parses or not.
func Total(spends []models.Spend) decimal.Decimal {
	total := decimal.Zero
	for _, s := range spends {
		total = total.Add(s.Amount)
	}

	return total
}

// CountInMonth returns the number of spends in the month and year of reference.
func CountInMonth(spends []models.Spend, reference time.Time) int {
	return len(FilterByMonth(spends, reference))
}

// Latest returns up to n spends, most recent date first.
//
// Spends on the same day keep their original relative order, reversed, so that
// the most recently recorded comes first. Spends without a parseable date are
// left out.
func Latest(spends []models.Spend, n int) []models.Spend {
	type dated struct {
		spend models.Spend
		date  time.Time
	}

	sorted := make([]dated, 0, len(spends))
	for i := len(spends) - 1; i >= 0; i-- {
		t, err := spends[i].Date.Time()
		if err != nil {
			continue
		}
		sorted = append(sorted, dated{spends[i], t})
	}

	slices.SortStableFunc(sorted, func(a, b dated) int {
		return b.date.Compare(a.date)
	})

	if n < 0 {
		n = 0
	}

	latest := make([]models.Spend, 0, n)
	for i := 0; i < len(sorted) && i < n; i++ {
		latest = append(latest, sorted[i].spend)
	}

	return latest
}
