package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bookeasy/portal/internal/core/domain"
	"github.com/bookeasy/portal/internal/core/ports"
)

type stubBackend struct {
	ports.BackendClient

	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	registerFn func(ctx context.Context, reg ports.Registration) (*ports.AuthResult, error)
}

func (s *stubBackend) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubBackend) Register(ctx context.Context, reg ports.Registration) (*ports.AuthResult, error) {
	return s.registerFn(ctx, reg)
}

type stubSessionRepo struct {
	sessions map[string]*ports.Session
	saves    int
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*ports.Session)}
}

func (r *stubSessionRepo) Save(_ context.Context, s *ports.Session) error {
	r.saves++
	clone := *s
	r.sessions[s.ID] = &clone
	return nil
}

func (r *stubSessionRepo) Find(_ context.Context, id string) (*ports.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func TestSessionService_Login_PersistsIdentityAndToken(t *testing.T) {
	backend := &stubBackend{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &ports.AuthResult{
				Token: "tok-123",
				User:  domain.User{ID: "u1", FullName: "Alice", Email: email, Role: domain.RoleUser},
			}, nil
		},
	}
	repo := newStubSessionRepo()
	svc := NewSessionService(backend, repo, zerolog.Nop())

	sess, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("expected a session id")
	}
	if sess.Token != "tok-123" || sess.User.ID != "u1" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	restored, err := svc.Restore(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if restored.Token != sess.Token || restored.User != sess.User {
		t.Fatalf("restored session differs: %+v", restored)
	}
}

func TestSessionService_Login_FailureWritesNothing(t *testing.T) {
	backend := &stubBackend{
		loginFn: func(_ context.Context, _, _ string) (*ports.AuthResult, error) {
			return nil, &domain.BackendError{StatusCode: 401, Message: "Invalid credentials"}
		},
	}
	repo := newStubSessionRepo()
	svc := NewSessionService(backend, repo, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); err == nil {
		t.Fatalf("expected error")
	}
	if repo.saves != 0 {
		t.Fatalf("failed login persisted %d sessions", repo.saves)
	}
	if domain.ErrorMessage(&domain.BackendError{Message: "Invalid credentials"}, "Login failed") != "Invalid credentials" {
		t.Fatalf("backend message not surfaced")
	}
}

func TestSessionService_Register_DoublesAsLogin(t *testing.T) {
	backend := &stubBackend{
		registerFn: func(_ context.Context, reg ports.Registration) (*ports.AuthResult, error) {
			if reg.FullName != "Bob" || reg.Role != domain.RoleAdmin {
				t.Fatalf("unexpected registration: %+v", reg)
			}
			return &ports.AuthResult{
				Token: "tok-reg",
				User:  domain.User{ID: "u2", FullName: reg.FullName, Email: reg.Email, Role: reg.Role},
			}, nil
		},
	}
	repo := newStubSessionRepo()
	svc := NewSessionService(backend, repo, zerolog.Nop())

	sess, err := svc.Register(context.Background(), ports.Registration{
		FullName: "Bob", Email: "bob@example.com", Password: "secret1", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if sess.Token != "tok-reg" {
		t.Fatalf("registration did not establish a session: %+v", sess)
	}
}

func TestSessionService_Logout_ClearsState(t *testing.T) {
	backend := &stubBackend{
		loginFn: func(_ context.Context, _, _ string) (*ports.AuthResult, error) {
			return &ports.AuthResult{Token: "tok", User: domain.User{ID: "u1"}}, nil
		},
	}
	repo := newStubSessionRepo()
	svc := NewSessionService(backend, repo, zerolog.Nop())

	sess, err := svc.Login(context.Background(), "a@b.c", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := svc.Logout(context.Background(), sess.ID); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.Restore(context.Background(), sess.ID); err == nil {
		t.Fatalf("session survived logout")
	}

	// Logging out twice, or with no session at all, is not an error.
	if err := svc.Logout(context.Background(), sess.ID); err != nil {
		t.Fatalf("repeat Logout returned error: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("anonymous Logout returned error: %v", err)
	}
}

func TestSessionService_Restore_EmptyIDIsAnonymous(t *testing.T) {
	svc := NewSessionService(&stubBackend{}, newStubSessionRepo(), zerolog.Nop())

	sess, err := svc.Restore(context.Background(), "")
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected anonymous, got %+v", sess)
	}
}
