package services

import (
	"slices"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

// ReconcileFilters runs once per render cycle, before filtering. It compares
// the current dataset signature with the one persisted by the previous
// cycle and returns the next session state.
//
// On a change (or on the first cycle) the filters reset to the full domain
// and cached widget values are discarded. Otherwise the persisted filters
// are sanitized against the domain. The new signature is always recorded.
func ReconcileFilters(sig models.Signature, prev models.SessionState) (next models.SessionState, changed bool) {
	next = prev
	changed = prev.Signature == nil || !prev.Signature.Equal(sig)

	current := sig
	current.Categories = slices.Clone(sig.Categories)
	current.Regions = slices.Clone(sig.Regions)
	next.Signature = &current

	var filters models.FilterSelection
	if changed || prev.Filters == nil {
		filters = sig.FullSelection()
		next.Widgets = nil
	} else {
		filters = SanitizeFilters(*prev.Filters, sig)
	}
	next.Filters = &filters
	return next, changed
}

// SanitizeFilters keeps only the parts of f that are valid for sig's
// domain. A dimension whose selection no longer intersects the domain falls
// back to every available value, and an interval that cannot be clamped
// into the date bounds falls back to the full bounds.
func SanitizeFilters(f models.FilterSelection, sig models.Signature) models.FilterSelection {
	out := models.FilterSelection{
		Categories: intersect(f.Categories, sig.Categories),
		Regions:    intersect(f.Regions, sig.Regions),
	}

	out.Start = clampDate(f.Start, sig.MinDate, sig.MaxDate, sig.MinDate)
	out.End = clampDate(f.End, sig.MinDate, sig.MaxDate, sig.MaxDate)
	if out.Start > out.End {
		out.Start, out.End = sig.MinDate, sig.MaxDate
	}
	return out
}

// intersect returns the selected values still present in available, in
// selection order, or all of available if none remain.
func intersect(selected, available []string) []string {
	out := make([]string, 0, len(selected))
	for _, v := range selected {
		if slices.Contains(available, v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return slices.Clone(available)
	}
	return out
}

func clampDate(d, lo, hi, fallback string) string {
	switch {
	case d == "":
		return fallback
	case d < lo:
		return lo
	case d > hi:
		return hi
	}
	return d
}
