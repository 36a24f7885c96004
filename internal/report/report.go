// Package report builds the multi-sheet spreadsheet export.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/sales-dashboard/internal/frame"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

const (
	SheetSummary    = "Summary"
	SheetByCategory = "By Category"
	SheetByRegion   = "By Region"
	SheetDaily      = "Daily Trends"
	SheetRaw        = "Raw Data"
)

// Sheets lists the report sheets in workbook order.
var Sheets = []string{SheetSummary, SheetByCategory, SheetByRegion, SheetDaily, SheetRaw}

// SummaryRow is one Metric/Value line of the summary sheet.
type SummaryRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// Summary returns the nine headline figures, formatted for display.
func Summary(records []models.Record) []SummaryRow {
	total := frame.Total(records)
	avg := 0.0
	if total.MeanSales != nil {
		avg = *total.MeanSales
	}
	ds := models.Dataset{Records: records}
	start, end := ds.DateBounds()

	return []SummaryRow{
		{"Total Sales", currency(total.Sales)},
		{"Total Units", humanize.Comma(int64(total.Units))},
		{"Total Customers", humanize.Comma(int64(total.Customers))},
		{"Average Sale", currency(avg)},
		{"Transactions", humanize.Comma(int64(total.Count))},
		{"Date Range Start", start},
		{"Date Range End", end},
		{"Categories", humanize.Comma(int64(len(ds.Categories())))},
		{"Regions", humanize.Comma(int64(len(ds.Regions())))},
	}
}

// Write builds the workbook for records and writes it to w.
func Write(w io.Writer, records []models.Record) error {
	f, err := Build(records)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// Build assembles the workbook in memory.
func Build(records []models.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetList()[0], SheetSummary); err != nil {
		return nil, err
	}
	for _, name := range Sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	summary := [][]any{{"Metric", "Value"}}
	for _, row := range Summary(records) {
		summary = append(summary, []any{row.Metric, row.Value})
	}

	byCategory := frame.Aggregate(records, frame.Category)
	byRegion := frame.Aggregate(records, frame.Region)
	bySales := func(t frame.Totals) float64 { return t.Sales }
	frame.SortBy(byCategory, bySales, true)
	frame.SortBy(byRegion, bySales, true)

	raw := [][]any{toAny(models.Columns)}
	for _, r := range records {
		raw = append(raw, []any{r.Date, r.Category, r.Region, r.Sales, r.Units, r.Customers})
	}

	sheets := map[string][][]any{
		SheetSummary:    summary,
		SheetByCategory: totalsRows(models.ColCategory, byCategory),
		SheetByRegion:   totalsRows(models.ColRegion, byRegion),
		SheetDaily:      totalsRows(models.ColDate, frame.Aggregate(records, frame.Date)),
		SheetRaw:        raw,
	}
	for _, name := range Sheets {
		if err := writeRows(f, name, sheets[name]); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func totalsRows(key string, rows []frame.Totals) [][]any {
	out := [][]any{{key, models.ColSales, models.ColUnits, models.ColCustomers}}
	for _, t := range rows {
		out = append(out, []any{t.Key, t.Sales, int64(t.Units), int64(t.Customers)})
	}
	return out
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func currency(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
