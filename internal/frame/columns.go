// Package frame provides the tabular primitives the dashboard needs over
// in-memory records: mask filtering, group-by/aggregate, pivot, sorting,
// top/bottom-N, rolling means, percent-of-total and descriptive statistics.
package frame

import (
	"fmt"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

// Measure names a numeric column.
type Measure string

const (
	Sales     Measure = models.ColSales
	Units     Measure = models.ColUnits
	Customers Measure = models.ColCustomers
)

// Measures lists the numeric columns in schema order.
var Measures = []Measure{Sales, Units, Customers}

func (m Measure) Of(r models.Record) float64 {
	switch m {
	case Sales:
		return r.Sales
	case Units:
		return float64(r.Units)
	case Customers:
		return float64(r.Customers)
	}
	return 0
}

func ParseMeasure(s string) (Measure, error) {
	for _, m := range Measures {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown measure %q", s)
}

// Dimension names a categorical column.
type Dimension string

const (
	Date     Dimension = models.ColDate
	Category Dimension = models.ColCategory
	Region   Dimension = models.ColRegion
)

var Dimensions = []Dimension{Category, Region, Date}

func (d Dimension) Of(r models.Record) string {
	switch d {
	case Date:
		return r.Date
	case Category:
		return r.Category
	case Region:
		return r.Region
	}
	return ""
}

func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// Values extracts a measure column.
func Values(records []models.Record, m Measure) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = m.Of(r)
	}
	return out
}

// Filter returns the records for which keep is true (a boolean mask).
func Filter(records []models.Record, keep func(models.Record) bool) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
