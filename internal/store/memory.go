package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

type memorySessionStore struct {
	sessions *expirable.LRU[string, models.SessionState]
}

// NewMemorySessionStore keeps session state in process memory, bounded to
// maxSessions entries that each expire ttl after their last save. State is
// copied on the way in and out so callers never share slices.
func NewMemorySessionStore(maxSessions int, ttl time.Duration) *memorySessionStore {
	return &memorySessionStore{sessions: expirable.NewLRU[string, models.SessionState](maxSessions, nil, ttl)}
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (*models.SessionState, error) {
	state, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil
	}
	out := cloneState(state)
	return &out, nil
}

func (s *memorySessionStore) Save(_ context.Context, state *models.SessionState) error {
	state.UpdatedAt = time.Now()
	s.sessions.Add(state.SessionID, cloneState(*state))
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.sessions.Remove(sessionID)
	return nil
}

func cloneState(s models.SessionState) models.SessionState {
	if s.Signature != nil {
		sig := *s.Signature
		sig.Categories = append([]string(nil), sig.Categories...)
		sig.Regions = append([]string(nil), sig.Regions...)
		s.Signature = &sig
	}
	if s.Filters != nil {
		f := s.Filters.Clone()
		s.Filters = &f
	}
	if s.Widgets != nil {
		w := s.Widgets.Clone()
		s.Widgets = &w
	}
	return s
}
