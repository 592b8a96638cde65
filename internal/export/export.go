// Package export writes the spends of a user to an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/aggregator"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/money"
	"github.com/spendwise/backend/internal/views"
	"github.com/xuri/excelize/v2"
)

const (
	SpendsSheet     = "Spends"
	CategoriesSheet = "Categories"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var spendHeaders = []string{"Date", "Name", "Category", "Amount", "Formatted", "Card"}

// Write writes a workbook with all spends and their category totals to w.
// Spends are written in the order given.
func Write(w io.Writer, spends []models.Spend, cards []models.Card, format money.Formatter) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet is renamed instead of adding a new one
	if err := f.SetSheetName(f.GetSheetName(0), SpendsSheet); err != nil {
		return fmt.Errorf("create spends sheet: %w", err)
	}

	names := make(map[uuid.UUID]string, len(cards))
	for _, c := range cards {
		names[c.ID] = c.Name
	}

	if err := f.SetSheetRow(SpendsSheet, "A1", &spendHeaders); err != nil {
		return err
	}

	for i, s := range spends {
		card, ok := names[s.PaymentCardID]
		if !ok {
			card = views.UnknownCard
		}

		amount, _ := s.Amount.Float64()
		row := []any{string(s.Date), s.Name, s.Category, amount, format.Format(s.Amount), card}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(SpendsSheet, cell, &row); err != nil {
			return fmt.Errorf("write spend %s: %w", s.ID, err)
		}
	}

	_ = f.SetColWidth(SpendsSheet, "A", "A", 10)
	_ = f.SetColWidth(SpendsSheet, "B", "B", 30)
	_ = f.SetColWidth(SpendsSheet, "C", "C", 15)
	_ = f.SetColWidth(SpendsSheet, "D", "E", 14)
	_ = f.SetColWidth(SpendsSheet, "F", "F", 20)

	if _, err := f.NewSheet(CategoriesSheet); err != nil {
		return fmt.Errorf("create categories sheet: %w", err)
	}

	if err := f.SetSheetRow(CategoriesSheet, "A1", &[]string{"Category", "Amount", "Formatted"}); err != nil {
		return err
	}

	totals := aggregator.CategoryTotals(spends, aggregator.Categories, aggregator.FoldUnknownInto(aggregator.Others))
	for i, t := range totals {
		amount, _ := t.Amount.Float64()

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(CategoriesSheet, cell, &[]any{t.Name, amount, format.Format(t.Amount)}); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	return f.Write(w)
}
