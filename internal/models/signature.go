package models

import "slices"

// Signature is a comparable summary of a dataset's domain, not its contents.
// Two datasets with equal signatures are "the same shape" and keep the
// user's filter selections across loads.
type Signature struct {
	SourceID   string   `firestore:"sourceId" json:"sourceId"`
	Categories []string `firestore:"categories" json:"categories"`
	Regions    []string `firestore:"regions" json:"regions"`
	MinDate    string   `firestore:"minDate" json:"minDate"`
	MaxDate    string   `firestore:"maxDate" json:"maxDate"`
}

func (s Signature) Equal(o Signature) bool {
	return s.SourceID == o.SourceID &&
		s.MinDate == o.MinDate &&
		s.MaxDate == o.MaxDate &&
		slices.Equal(s.Categories, o.Categories) &&
		slices.Equal(s.Regions, o.Regions)
}

// FullSelection selects the entire domain: every date, category and region.
func (s Signature) FullSelection() FilterSelection {
	return FilterSelection{
		Start:      s.MinDate,
		End:        s.MaxDate,
		Categories: slices.Clone(s.Categories),
		Regions:    slices.Clone(s.Regions),
	}
}
