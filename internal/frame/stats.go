package frame

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
	"github.com/GregMSThompson/sales-dashboard/pkg/helpers"
)

// CorrelationMatrix holds pairwise Pearson correlations; nil cells are
// undefined (a constant column).
type CorrelationMatrix struct {
	Labels []string     `json:"labels"`
	Values [][]*float64 `json:"values"`
}

func Correlation(records []models.Record, measures ...Measure) CorrelationMatrix {
	cols := make([][]float64, len(measures))
	labels := make([]string, len(measures))
	for i, m := range measures {
		cols[i] = Values(records, m)
		labels[i] = string(m)
	}

	values := make([][]*float64, len(measures))
	for i := range measures {
		values[i] = make([]*float64, len(measures))
		for j := range measures {
			if len(records) < 2 {
				continue
			}
			values[i][j] = helpers.Finite(stat.Correlation(cols[i], cols[j], nil))
		}
	}
	return CorrelationMatrix{Labels: labels, Values: values}
}

// Summary mirrors a dataframe describe(): count, mean, std and quartiles.
type Summary struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"q25"`
	Q50    *float64 `json:"q50"`
	Q75    *float64 `json:"q75"`
	Max    *float64 `json:"max"`
}

func Describe(column string, x []float64) Summary {
	s := Summary{Column: column, Count: len(x)}
	if len(x) == 0 {
		return s
	}
	sorted := slices.Clone(x)
	slices.Sort(sorted)

	s.Mean, s.Std = MeanStd(x)
	s.Min = helpers.Ptr(sorted[0])
	s.Q25 = helpers.Ptr(Quantile(sorted, 0.25))
	s.Q50 = helpers.Ptr(Quantile(sorted, 0.5))
	s.Q75 = helpers.Ptr(Quantile(sorted, 0.75))
	s.Max = helpers.Ptr(sorted[len(sorted)-1])
	return s
}

// Quantile returns the p-quantile of sorted x, interpolating linearly
// between closest ranks (h = (n-1)p).
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// BoxStats are the five-number summary plus mean and std for a box plot.
// Whiskers extend to the furthest points within 1.5 IQR of the quartiles.
type BoxStats struct {
	Name         string    `json:"name"`
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lowerWhisker"`
	UpperWhisker float64   `json:"upperWhisker"`
	Mean         *float64  `json:"mean"`
	Std          *float64  `json:"std"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

func Box(name string, x []float64) BoxStats {
	b := BoxStats{Name: name, Count: len(x)}
	if len(x) == 0 {
		return b
	}
	sorted := slices.Clone(x)
	slices.Sort(sorted)

	b.Min, b.Max = sorted[0], sorted[len(sorted)-1]
	b.Q1 = Quantile(sorted, 0.25)
	b.Median = Quantile(sorted, 0.5)
	b.Q3 = Quantile(sorted, 0.75)
	b.Mean, b.Std = MeanStd(x)

	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Max, b.Min
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.LowerWhisker = math.Min(b.LowerWhisker, v)
		b.UpperWhisker = math.Max(b.UpperWhisker, v)
	}
	return b
}

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram buckets x into equal-width bins spanning its range.
func Histogram(x []float64, bins int) []Bin {
	if len(x) == 0 || bins <= 0 {
		return nil
	}
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi + 1, Count: len(sorted)}}
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: int(counts[i])}
	}
	return out
}
