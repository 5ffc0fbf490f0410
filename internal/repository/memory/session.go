// Package memory provides an in-process session store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/internal/session"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

var _ repository.SessionRepository = (*SessionRepository)(nil)

// SessionRepository keeps sessions in a map guarded by a RWMutex.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewSessionRepository creates an empty store.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*session.Session)}
}

// Get retrieves a session by id.
func (r *SessionRepository) Get(_ context.Context, id string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("session", id)
	}
	return s, nil
}

// Save stores a session.
func (r *SessionRepository) Save(_ context.Context, s *session.Session) error {
	if s == nil || s.ID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

// Delete removes a session.
func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// DeleteIdle removes sessions idle since cutoff, oldest first.
func (r *SessionRepository) DeleteIdle(_ context.Context, cutoff time.Time) ([]*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []*session.Session
	for id, s := range r.sessions {
		if s.IdleSince(cutoff) {
			removed = append(removed, s)
			delete(r.sessions, id)
		}
	}
	sort.Slice(removed, func(i, j int) bool {
		return removed[i].LastSeen().Before(removed[j].LastSeen())
	})
	return removed, nil
}

// Count returns the number of stored sessions.
func (r *SessionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}
