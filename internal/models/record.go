package models

import (
	"sort"
	"time"
)

// DateLayout is the calendar-date format used for Record.Date and every
// date-valued field in the API.
const DateLayout = "2006-01-02"

// Column names of the dataset schema, in export order.
const (
	ColDate      = "Date"
	ColCategory  = "Category"
	ColRegion    = "Region"
	ColSales     = "Sales"
	ColUnits     = "Units"
	ColCustomers = "Customers"
)

// Columns is the required, case-sensitive input schema.
var Columns = []string{ColDate, ColCategory, ColRegion, ColSales, ColUnits, ColCustomers}

// Record is one validated row of sales data.
type Record struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Category  string  `json:"category"`
	Region    string  `json:"region"`
	Sales     float64 `json:"sales"`
	Units     int     `json:"units"`
	Customers int     `json:"customers"`
}

// Dataset is a fully materialized, validated collection of records.
type Dataset struct {
	SourceID string    `json:"sourceId"`
	Name     string    `json:"name"`
	Records  []Record  `json:"-"`
	Dropped  int       `json:"dropped"`
	LoadedAt time.Time `json:"loadedAt"`
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Categories returns the sorted distinct categories present.
func (d *Dataset) Categories() []string {
	return distinct(d.Records, func(r Record) string { return r.Category })
}

// Regions returns the sorted distinct regions present.
func (d *Dataset) Regions() []string {
	return distinct(d.Records, func(r Record) string { return r.Region })
}

// DateBounds returns the earliest and latest record dates.
func (d *Dataset) DateBounds() (minDate, maxDate string) {
	for i, r := range d.Records {
		if i == 0 || r.Date < minDate {
			minDate = r.Date
		}
		if i == 0 || r.Date > maxDate {
			maxDate = r.Date
		}
	}
	return minDate, maxDate
}

// Signature summarizes the dataset's domain.
func (d *Dataset) Signature() Signature {
	minDate, maxDate := d.DateBounds()
	return Signature{
		SourceID:   d.SourceID,
		Categories: d.Categories(),
		Regions:    d.Regions(),
		MinDate:    minDate,
		MaxDate:    maxDate,
	}
}

// WithRecords returns a copy of the dataset metadata carrying records.
func (d *Dataset) WithRecords(records []Record) *Dataset {
	out := *d
	out.Records = records
	return &out
}

func distinct(records []Record, key func(Record) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
