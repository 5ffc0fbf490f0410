package repository

import (
	"context"
	"time"

	"github.com/utafrali/storefront/internal/session"
)

// SessionRepository defines the interface for page session storage.
type SessionRepository interface {
	// Get retrieves a session by id. Returns an error wrapping
	// apperrors.ErrNotFound when there is none.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Save stores a session, replacing any session with the same id.
	Save(ctx context.Context, s *session.Session) error

	// Delete removes a session by id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteIdle removes every session not used since cutoff and returns them
	// so the caller can tear them down.
	DeleteIdle(ctx context.Context, cutoff time.Time) ([]*session.Session, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}
