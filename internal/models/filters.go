package models

import "slices"

// FilterSelection is the set of sidebar choices applied to a dataset.
// An empty Categories or Regions slice places no restriction on that
// dimension when filtering.
type FilterSelection struct {
	Start      string   `firestore:"start" json:"start"`
	End        string   `firestore:"end" json:"end"`
	Categories []string `firestore:"categories" json:"categories"`
	Regions    []string `firestore:"regions" json:"regions"`
}

func (f FilterSelection) Clone() FilterSelection {
	f.Categories = slices.Clone(f.Categories)
	f.Regions = slices.Clone(f.Regions)
	return f
}

// Match reports whether r passes every filter.
func (f FilterSelection) Match(r Record) bool {
	if f.Start != "" && r.Date < f.Start {
		return false
	}
	if f.End != "" && r.Date > f.End {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, r.Category) {
		return false
	}
	if len(f.Regions) > 0 && !slices.Contains(f.Regions, r.Region) {
		return false
	}
	return true
}

// Apply returns the records that match f, preserving order.
func (f FilterSelection) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
