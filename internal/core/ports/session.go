package ports

import (
	"context"

	"github.com/bookeasy/portal/internal/core/domain"
)

// Session is the authenticated state of one browser: the backend bearer
// token plus the identity snapshot issued alongside it.
type Session struct {
	ID    string
	Token string
	User  domain.User
}

// SessionRepository persists sessions in durable storage. Implementations
// store the credential and identity under fixed field names and restore
// them verbatim.
type SessionRepository interface {
	Save(ctx context.Context, s *Session) error
	Find(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionService owns every write to session state. Pages read sessions but
// never mutate them directly.
type SessionService interface {
	// Restore resolves a session id to its persisted state. A missing or
	// expired session yields domain.ErrSessionNotFound.
	Restore(ctx context.Context, id string) (*Session, error)
	// Login authenticates against the backend and persists a fresh session
	// on success. On failure no state is written.
	Login(ctx context.Context, email, password string) (*Session, error)
	// Register creates an account; the backend response doubles as an
	// implicit login.
	Register(ctx context.Context, reg Registration) (*Session, error)
	// Logout erases the persisted session. No backend call is made.
	Logout(ctx context.Context, id string) error
}
