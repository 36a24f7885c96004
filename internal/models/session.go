package models

import "time"

// SessionState is the persisted per-session key-value store.
//
//	signature  written by the reconciler every cycle; read by the reconciler.
//	filters    written by the reconciler (reset/sanitize) and by the widget
//	           pass (live choices); read by filtering.
//	widgets    last values reported by each widget; cleared on dataset change.
//
// The loaded and filtered datasets live in the dataset cache, not here.
type SessionState struct {
	SessionID string           `firestore:"sessionId" json:"sessionId"`
	Signature *Signature       `firestore:"signature,omitempty" json:"signature,omitempty"`
	Filters   *FilterSelection `firestore:"filters,omitempty" json:"filters,omitempty"`
	Widgets   *FilterSelection `firestore:"widgets,omitempty" json:"widgets,omitempty"`
	UpdatedAt time.Time        `firestore:"updatedAt" json:"updatedAt"`
}
