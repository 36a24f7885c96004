package frame

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
	"github.com/GregMSThompson/sales-dashboard/pkg/helpers"
)

// Group is the set of rows sharing one combination of dimension values.
type Group struct {
	Keys []string
	Rows []models.Record
}

func (g Group) Key() string {
	if len(g.Keys) == 0 {
		return ""
	}
	return g.Keys[0]
}

// GroupBy partitions records by the given dimensions. Groups come back
// sorted by key, like a dataframe group-by.
func GroupBy(records []models.Record, dims ...Dimension) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, r := range records {
		keys := make([]string, len(dims))
		for i, d := range dims {
			keys[i] = d.Of(r)
		}
		id := joinKeys(keys)
		pos, ok := index[id]
		if !ok {
			pos = len(groups)
			index[id] = pos
			groups = append(groups, Group{Keys: keys})
		}
		groups[pos].Rows = append(groups[pos].Rows, r)
	}

	slices.SortFunc(groups, func(a, b Group) int {
		return slices.Compare(a.Keys, b.Keys)
	})
	return groups
}

func joinKeys(keys []string) string {
	n := 0
	for _, k := range keys {
		n += len(k) + 1
	}
	b := make([]byte, 0, n)
	for _, k := range keys {
		b = append(b, k...)
		b = append(b, 0x1f)
	}
	return string(b)
}

// Totals is the aggregate of one group.
type Totals struct {
	Key       string   `json:"key"`
	Keys      []string `json:"keys,omitempty"`
	Count     int      `json:"count"`
	Sales     float64  `json:"sales"`
	Units     float64  `json:"units"`
	Customers float64  `json:"customers"`
	MeanSales *float64 `json:"meanSales"`
	StdSales  *float64 `json:"stdSales"`
}

// Summarize computes sums, count, mean and sample standard deviation.
func Summarize(g Group) Totals {
	t := Totals{Key: g.Key(), Keys: g.Keys, Count: len(g.Rows)}
	for _, r := range g.Rows {
		t.Sales += r.Sales
		t.Units += float64(r.Units)
		t.Customers += float64(r.Customers)
	}
	mean, std := MeanStd(Values(g.Rows, Sales))
	t.MeanSales = mean
	t.StdSales = std
	return t
}

// Aggregate groups by dims and summarizes each group.
func Aggregate(records []models.Record, dims ...Dimension) []Totals {
	groups := GroupBy(records, dims...)
	out := make([]Totals, len(groups))
	for i, g := range groups {
		out[i] = Summarize(g)
	}
	return out
}

// Total summarizes all records as a single group.
func Total(records []models.Record) Totals {
	return Summarize(Group{Rows: records})
}

// MeanStd returns the mean and sample (n-1) standard deviation of x.
// Either is nil when undefined: mean for empty input, std for fewer than
// two values.
func MeanStd(x []float64) (mean, std *float64) {
	switch len(x) {
	case 0:
		return nil, nil
	case 1:
		return helpers.Ptr(x[0]), nil
	}
	m, s := stat.MeanStdDev(x, nil)
	return helpers.Finite(m), helpers.Finite(s)
}

// Of reads a measure total.
func (t Totals) Of(m Measure) float64 {
	switch m {
	case Sales:
		return t.Sales
	case Units:
		return t.Units
	case Customers:
		return t.Customers
	}
	return 0
}

// SortBy sorts rows by value, stably, descending when desc is set.
func SortBy[T any](rows []T, value func(T) float64, desc bool) {
	slices.SortStableFunc(rows, func(a, b T) int {
		if desc {
			return cmp.Compare(value(b), value(a))
		}
		return cmp.Compare(value(a), value(b))
	})
}

// TopN returns the n rows with the largest value, largest first.
func TopN[T any](rows []T, n int, value func(T) float64) []T {
	sorted := slices.Clone(rows)
	SortBy(sorted, value, true)
	return head(sorted, n)
}

// BottomN returns the n rows with the smallest value, smallest first.
func BottomN[T any](rows []T, n int, value func(T) float64) []T {
	sorted := slices.Clone(rows)
	SortBy(sorted, value, false)
	return head(sorted, n)
}

func head[T any](rows []T, n int) []T {
	if n >= 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

// SortRecordsByDateDesc returns records newest first; ties keep input order.
func SortRecordsByDateDesc(records []models.Record) []models.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b models.Record) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return out
}

// Head returns at most n records.
func Head(records []models.Record, n int) []models.Record {
	return head(records, n)
}
