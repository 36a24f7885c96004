package dataset

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

var dateLayouts = []string{
	models.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// Validate checks the schema and coerces every cell to its typed column.
//
// A missing required column is a schema error and an unparseable date is a
// coercion error; both reject the whole table. Rows with blank required
// cells or numeric cells that are non-numeric or negative are dropped. If no
// row survives, an empty-result error is returned.
func Validate(t *Table, sourceID, name string) (*models.Dataset, error) {
	index := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	var missing []string
	for _, col := range models.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errs.NewSchemaError(missing, slices.Clone(models.Columns))
	}

	records := make([]models.Record, 0, len(t.Rows))
	dropped := 0
	for n, row := range t.Rows {
		cell := func(col string) string { return strings.TrimSpace(row[index[col]]) }

		rawDate := cell(models.ColDate)
		if rawDate == "" {
			dropped++
			continue
		}
		date, err := ParseDate(rawDate, t.ExcelDates)
		if err != nil {
			return nil, errs.NewCoercionError(models.ColDate, fmt.Errorf("row %d: %w", n+2, err))
		}

		category, region := cell(models.ColCategory), cell(models.ColRegion)
		sales, okSales := parseNumber(cell(models.ColSales))
		units, okUnits := parseNumber(cell(models.ColUnits))
		customers, okCustomers := parseNumber(cell(models.ColCustomers))
		if category == "" || region == "" || !okSales || !okUnits || !okCustomers {
			dropped++
			continue
		}

		records = append(records, models.Record{
			Date:      date,
			Category:  category,
			Region:    region,
			Sales:     sales,
			Units:     int(math.Round(units)),
			Customers: int(math.Round(customers)),
		})
	}

	if len(records) == 0 {
		return nil, errs.NewEmptyResultError("no valid rows remain after cleaning the uploaded data")
	}
	return &models.Dataset{
		SourceID: sourceID,
		Name:     name,
		Records:  records,
		Dropped:  dropped,
		LoadedAt: time.Now(),
	}, nil
}

// ParseDate normalizes a date cell to YYYY-MM-DD. When excelSerial is set a
// bare number is read as a spreadsheet date serial.
func ParseDate(s string, excelSerial bool) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.DateLayout), nil
		}
	}
	if excelSerial {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
			t, err := excelize.ExcelDateToTime(f, false)
			if err == nil {
				return t.Format(models.DateLayout), nil
			}
		}
	}
	return "", fmt.Errorf("cannot parse %q as a date", s)
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}
