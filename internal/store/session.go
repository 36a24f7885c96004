package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

type sessionStore struct {
	client *firestore.Client
}

// NewSessionStore persists session state in the "sessions" collection,
// one document per session id.
func NewSessionStore(client *firestore.Client) *sessionStore {
	return &sessionStore{client: client}
}

func (s *sessionStore) collection() *firestore.CollectionRef {
	return s.client.Collection("sessions")
}

// Get returns nil, nil for a session that has never been saved.
func (s *sessionStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	doc, err := s.collection().Doc(sessionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errs.NewDatabaseError("read", "failed to get session state", err)
	}
	var state models.SessionState
	if err := doc.DataTo(&state); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse session state", err)
	}
	return &state, nil
}

func (s *sessionStore) Save(ctx context.Context, state *models.SessionState) error {
	state.UpdatedAt = time.Now()
	_, err := s.collection().Doc(state.SessionID).Set(ctx, state)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save session state", err)
	}
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.collection().Doc(sessionID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete session state", err)
	}
	return nil
}
