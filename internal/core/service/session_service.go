package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bookeasy/portal/internal/core/ports"
)

// SessionService implements login, registration, restore and logout on top
// of the booking backend and a session repository.
type SessionService struct {
	backend ports.BackendClient
	repo    ports.SessionRepository
	logger  zerolog.Logger
}

func NewSessionService(backend ports.BackendClient, repo ports.SessionRepository, logger zerolog.Logger) *SessionService {
	return &SessionService{backend: backend, repo: repo, logger: logger}
}

func (s *SessionService) Restore(ctx context.Context, id string) (*ports.Session, error) {
	if id == "" {
		return nil, nil
	}
	sess, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	auth, err := s.backend.Login(ctx, email, password)
	if err != nil {
		// Prior state stays untouched; the caller surfaces the message.
		return nil, err
	}
	return s.persist(ctx, auth)
}

func (s *SessionService) Register(ctx context.Context, reg ports.Registration) (*ports.Session, error) {
	auth, err := s.backend.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	// Registration issues a token, so it doubles as a login.
	return s.persist(ctx, auth)
}

func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", id).Msg("session ended")
	return nil
}

// persist writes identity and credential under a fresh session id. Token and
// identity are stored together so a restored session is either fully
// authenticated or absent.
func (s *SessionService) persist(ctx context.Context, auth *ports.AuthResult) (*ports.Session, error) {
	sess := &ports.Session{
		ID:    uuid.NewString(),
		Token: auth.Token,
		User:  auth.User,
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("session_id", sess.ID).
		Str("user_id", sess.User.ID).
		Str("role", sess.User.Role).
		Msg("session established")
	return sess, nil
}
