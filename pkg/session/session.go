// Package session persists authenticated upload-service sessions.
//
// A session holds the JWT obtained from the service's login endpoint so
// repeated plots don't re-authenticate. Three backends implement Store:
//   - memory: in-process storage for tests and embedding
//   - file: JSON files under ~/.config/graphport/sessions/ for the CLI
//   - redis: shared storage for multi-instance deployments
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("not found")

// DefaultTTL is the default session duration. Upload-service JWTs are
// short-lived; the stored session outlives the token and is refreshed
// through the service's refresh endpoint.
const DefaultTTL = 24 * time.Hour

// Session stores one authenticated connection to an upload service.
type Session struct {
	// ID identifies the session in the store. The CLI uses the server
	// hostname so each server keeps its own session.
	ID        string    `json:"id"`
	Server    string    `json:"server"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op for backends with
	// native expiry).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// New creates a session for the given server and token.
func New(server, token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        server,
		Server:    server,
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}
