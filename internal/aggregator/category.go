package aggregator

import (
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"golang.org/x/exp/slices"
)

// Category is a spend category and its display color.
type Category struct {
	Name  string `json:"name" example:"Food"`     // Name of the category
	Color string `json:"color" example:"#FF6384"` // Display color
}

// Others is the category that collects spends of unknown categories
// where folding is requested.
const Others = "Others"

// Categories are the known spend categories.
var Categories = []Category{
	{Name: "Food", Color: "#FF6384"},
	{Name: "Transport", Color: "#36A2EB"},
	{Name: "Entertainment", Color: "#FFCE56"},
	{Name: "Shopping", Color: "#4BC0C0"},
	{Name: Others, Color: "#9966FF"},
}

// CategoryNames returns the names of the categories.
func CategoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// Palette maps category names to display colors. Categories that are not
// in Colors use Default.
type Palette struct {
	Colors  map[string]string
	Default string
}

// DefaultPalette returns the palette for the known categories.
func DefaultPalette() Palette {
	p := Palette{
		Colors:  make(map[string]string, len(Categories)),
		Default: "#A78BFA",
	}

	for _, c := range Categories {
		p.Colors[c.Name] = c.Color
	}

	return p
}

// Color returns the color for the category.
func (p Palette) Color(name string) string {
	if c, ok := p.Colors[name]; ok {
		return c
	}
	return p.Default
}

// CategoryTotal is the sum of the spends in one category.
type CategoryTotal struct {
	Name   string          `json:"name" example:"Food"`                          // Name of the category
	Amount decimal.Decimal `json:"amount" example:"17582" swaggertype:"string"` // Sum of the spends
	Color  string          `json:"color" example:"#FF6384"`                      // Display color
}

// CategoryGroup summarizes the spends of one category.
type CategoryGroup struct {
	Name         string          `json:"name" example:"Food"`                          // Name of the category
	Color        string          `json:"color" example:"#FF6384"`                      // Display color
	Transactions int             `json:"transactions" example:"6"`                     // Number of spends
	Amount       decimal.Decimal `json:"amount" example:"17582" swaggertype:"string"` // Sum of the spends
}

type options struct {
	foldInto string
	known    []string
}

// Option configures CategoryTotals and CategoryGroups.
type Option func(*options)

// FoldUnknownInto makes spends of unknown categories count towards the
// category with the given name.
//
// For CategoryTotals, the known categories are the definitions passed in and
// folding only happens if name is one of them. For CategoryGroups, the known
// categories must be given with Known, otherwise nothing is folded.
func FoldUnknownInto(name string) Option {
	return func(o *options) {
		o.foldInto = name
	}
}

// Known sets the known categories for CategoryGroups.
func Known(names ...string) Option {
	return func(o *options) {
		o.known = names
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CategoryTotals sums the spends per category.
//
// The result has exactly one entry per definition, in the order of the
// definitions. Spends are matched by exact category name. Spends of categories
// that are not defined are not counted unless FoldUnknownInto is used.
//
// If the sum of all totals is zero, charting callers substitute their own
// placeholder entry.
func CategoryTotals(spends []models.Spend, categories []Category, opts ...Option) []CategoryTotal {
	o := newOptions(opts)
	names := CategoryNames(categories)

	fold := -1
	if o.foldInto != "" {
		fold = slices.Index(names, o.foldInto)
	}

	totals := make([]CategoryTotal, len(categories))
	for i, c := range categories {
		totals[i] = CategoryTotal{Name: c.Name, Amount: decimal.Zero, Color: c.Color}
	}

	for _, s := range spends {
		i := slices.Index(names, s.Category)
		if i == -1 {
			i = fold
		}

		if i == -1 {
			continue
		}

		totals[i].Amount = totals[i].Amount.Add(s.Amount)
	}

	return totals
}

// CategoryGroups groups the spends by category, counting the spends and
// summing their amounts.
//
// Only categories that occur are returned, in order of their first
// occurrence. Colors are taken from the palette.
func CategoryGroups(spends []models.Spend, colors Palette, opts ...Option) []CategoryGroup {
	o := newOptions(opts)
	fold := o.foldInto != "" && len(o.known) > 0

	groups := make([]CategoryGroup, 0)
	index := make(map[string]int)

	for _, s := range spends {
		name := s.Category
		if fold && !slices.Contains(o.known, name) {
			name = o.foldInto
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, CategoryGroup{Name: name, Color: colors.Color(name), Amount: decimal.Zero})
		}

		groups[i].Transactions++
		groups[i].Amount = groups[i].Amount.Add(s.Amount)
	}

	return groups
}

// IsEmpty reports whether all totals are zero.
func IsEmpty(totals []CategoryTotal) bool {
	for _, t := range totals {
		if !t.Amount.IsZero() {
			return false
		}
	}
	return true
}
