package reports

import (
	"context"
	"fmt"
	"io"

	"finance-tracker-go/internal/domain/entries"
	"github.com/xuri/excelize/v2"
)

const (
	sheetExpenses = "Expenses"
	sheetIncomes  = "Incomes"
	sheetSummary  = "Summary"
)

var entryHeaders = []string{"Date", "Description", "Category", "Subcategory", "Status", "Amount"}

// WriteExport renders the month as an xlsx workbook with one sheet per kind and a summary sheet.
func (s *Service) WriteExport(ctx context.Context, ownerID string, period Period, w io.Writer) error {
	overview, err := s.Overview(ctx, ownerID, period)
	if err != nil {
		return err
	}

	filter := entries.ListFilter{Month: period.Month, Year: period.Year}
	expenses, err := s.entries.List(ctx, entries.KindExpense, ownerID, filter)
	if err != nil {
		return err
	}
	incomes, err := s.entries.List(ctx, entries.KindIncome, ownerID, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetExpenses); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeEntriesSheet(f, sheetExpenses, expenses); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetIncomes); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheetIncomes, err)
	}
	if err := writeEntriesSheet(f, sheetIncomes, incomes); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheetSummary, err)
	}
	if err := writeSummarySheet(f, period, overview); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeEntriesSheet(f *excelize.File, sheet string, items []entries.Entry) error {
	if err := f.SetSheetRow(sheet, "A1", &entryHeaders); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		subcategory := ""
		if item.Subcategory != nil {
			subcategory = *item.Subcategory
		}
		row := []any{
			entries.FormatDate(item.EffectiveDate),
			item.Description,
			item.CategoryName,
			subcategory,
			string(item.Status),
			item.Amount.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "C", 30)
}

func writeSummarySheet(f *excelize.File, period Period, overview Overview) error {
	rows := [][]any{
		{"Period", period.String()},
		{"", "Settled", "Open", "Total"},
		{sheetExpenses, overview.Expenses.Settled.InexactFloat64(), overview.Expenses.Open.InexactFloat64(), overview.Expenses.Total.InexactFloat64()},
		{sheetIncomes, overview.Incomes.Settled.InexactFloat64(), overview.Incomes.Open.InexactFloat64(), overview.Incomes.Total.InexactFloat64()},
		{"Balance", overview.Balance.InexactFloat64()},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}
