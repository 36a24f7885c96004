package frame

import (
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
	"github.com/GregMSThompson/sales-dashboard/pkg/helpers"
)

// RollingMean is a trailing moving average. The first window-1 positions
// are nil because the window is not yet full.
func RollingMean(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 0 {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = helpers.Ptr(sum / float64(window))
		}
	}
	return out
}

// PercentOfTotal expresses each value as a percentage of their sum.
func PercentOfTotal(values []float64) []float64 {
	out := make([]float64, len(values))
	total := floats.Sum(values)
	if total == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / total * 100
	}
	return out
}

// CumulativePercent is the running sum of values as a percentage of the total.
func CumulativePercent(values []float64) []float64 {
	out := make([]float64, len(values))
	total := floats.Sum(values)
	if total == 0 {
		return out
	}
	floats.CumSum(out, values)
	floats.Scale(100/total, out)
	return out
}

// Pivot is a two-axis aggregate with missing combinations filled by zero.
type Pivot struct {
	Rows   []string    `json:"rows"`
	Cols   []string    `json:"cols"`
	Values [][]float64 `json:"values"`
}

// PivotSum sums measure m for every (row, col) combination.
func PivotSum(records []models.Record, row, col Dimension, m Measure) Pivot {
	rowIdx := map[string]int{}
	colIdx := map[string]int{}
	var rows, cols []string
	for _, r := range records {
		if _, ok := rowIdx[row.Of(r)]; !ok {
			rowIdx[row.Of(r)] = 0
			rows = append(rows, row.Of(r))
		}
		if _, ok := colIdx[col.Of(r)]; !ok {
			colIdx[col.Of(r)] = 0
			cols = append(cols, col.Of(r))
		}
	}
	slices.Sort(rows)
	slices.Sort(cols)
	for i, k := range rows {
		rowIdx[k] = i
	}
	for i, k := range cols {
		colIdx[k] = i
	}

	values := make([][]float64, len(rows))
	for i := range values {
		values[i] = make([]float64, len(cols))
	}
	for _, r := range records {
		values[rowIdx[row.Of(r)]][colIdx[col.Of(r)]] += m.Of(r)
	}
	return Pivot{Rows: rows, Cols: cols, Values: values}
}
