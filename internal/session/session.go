// Package session holds one visitor's page and serializes the UI events
// applied to it.
package session

import (
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/component"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Session is one visitor's page. Every read or write of the page goes
// through Do so the component tree sees a single logical thread.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	app      *component.App
	closed   bool
}

// New creates a session around app.
func New(id string, app *component.App, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		lastSeen:  now,
		app:       app,
	}
}

// Do runs fn with exclusive access to the page and marks the session as seen
// at now. A closed session returns a not-found error without running fn.
func (s *Session) Do(now time.Time, fn func(app *component.App) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return apperrors.NotFound("session", s.ID)
	}
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
	return fn(s.app)
}

// LastSeen returns the time of the most recent Do.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// IdleSince reports whether the session has not been used since cutoff.
func (s *Session) IdleSince(cutoff time.Time) bool {
	return !s.LastSeen().After(cutoff)
}

// Close tears the page down. Later calls do nothing.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.app.Close()
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
