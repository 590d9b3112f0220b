package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookeasy/portal/internal/core/domain"
	"github.com/bookeasy/portal/internal/core/ports"
	"github.com/bookeasy/portal/internal/pkg/config"
	"github.com/bookeasy/portal/internal/web"
	"github.com/bookeasy/portal/internal/web/middleware"
)

// stubBackend implements ports.BackendClient with per-call hooks. Calls
// without a hook fail the test so a scenario cannot silently reach the
// backend in an unexpected way.
type stubBackend struct {
	t *testing.T

	listMyFn  func() ([]domain.Booking, error)
	listAllFn func() ([]domain.Booking, error)
	listResFn func() ([]domain.Resource, error)
	approveFn func(id string) (*domain.Booking, error)
	rejectFn  func(id, reason string) (*domain.Booking, error)
	cancelFn  func(id string) (*domain.Booking, error)

	approveCalls  int
	rejectCalls   int
	cancelCalls   int
	listAllTokens []string
}

func (s *stubBackend) Register(context.Context, ports.Registration) (*ports.AuthResult, error) {
	s.t.Fatalf("unexpected Register call")
	return nil, nil
}

func (s *stubBackend) Login(context.Context, string, string) (*ports.AuthResult, error) {
	s.t.Fatalf("unexpected Login call")
	return nil, nil
}

func (s *stubBackend) ListResources(context.Context, string) ([]domain.Resource, error) {
	if s.listResFn == nil {
		s.t.Fatalf("unexpected ListResources call")
	}
	return s.listResFn()
}

func (s *stubBackend) GetResource(context.Context, string, string) (*domain.Resource, error) {
	s.t.Fatalf("unexpected GetResource call")
	return nil, nil
}

func (s *stubBackend) CreateResource(context.Context, string, ports.ResourceInput) (*domain.Resource, error) {
	s.t.Fatalf("unexpected CreateResource call")
	return nil, nil
}

func (s *stubBackend) UpdateResource(context.Context, string, string, ports.ResourceInput) (*domain.Resource, error) {
	s.t.Fatalf("unexpected UpdateResource call")
	return nil, nil
}

func (s *stubBackend) DeleteResource(context.Context, string, string) error {
	s.t.Fatalf("unexpected DeleteResource call")
	return nil
}

func (s *stubBackend) ListAllBookings(_ context.Context, token string) ([]domain.Booking, error) {
	if s.listAllFn == nil {
		s.t.Fatalf("unexpected ListAllBookings call")
	}
	s.listAllTokens = append(s.listAllTokens, token)
	return s.listAllFn()
}

func (s *stubBackend) ListMyBookings(context.Context, string) ([]domain.Booking, error) {
	if s.listMyFn == nil {
		s.t.Fatalf("unexpected ListMyBookings call")
	}
	return s.listMyFn()
}

func (s *stubBackend) GetBooking(context.Context, string, string) (*domain.Booking, error) {
	s.t.Fatalf("unexpected GetBooking call")
	return nil, nil
}

func (s *stubBackend) CreateBooking(context.Context, string, string, string) (*domain.Booking, error) {
	s.t.Fatalf("unexpected CreateBooking call")
	return nil, nil
}

func (s *stubBackend) ApproveBooking(_ context.Context, _, id string) (*domain.Booking, error) {
	s.approveCalls++
	if s.approveFn == nil {
		s.t.Fatalf("unexpected ApproveBooking call")
	}
	return s.approveFn(id)
}

func (s *stubBackend) RejectBooking(_ context.Context, _, id, reason string) (*domain.Booking, error) {
	s.rejectCalls++
	if s.rejectFn == nil {
		s.t.Fatalf("unexpected RejectBooking call")
	}
	return s.rejectFn(id, reason)
}

func (s *stubBackend) CancelBooking(_ context.Context, _, id string) (*domain.Booking, error) {
	s.cancelCalls++
	if s.cancelFn == nil {
		s.t.Fatalf("unexpected CancelBooking call")
	}
	return s.cancelFn(id)
}

// stubSessions serves fixed sessions by id.
type stubSessions struct {
	byID    map[string]*ports.Session
	loginFn func(email, password string) (*ports.Session, error)
	logouts []string
}

func (s *stubSessions) Restore(_ context.Context, id string) (*ports.Session, error) {
	if sess, ok := s.byID[id]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessions) Login(_ context.Context, email, password string) (*ports.Session, error) {
	if s.loginFn == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.loginFn(email, password)
}

func (s *stubSessions) Register(context.Context, ports.Registration) (*ports.Session, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubSessions) Logout(_ context.Context, id string) error {
	s.logouts = append(s.logouts, id)
	delete(s.byID, id)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port: "3000",
		Env:  "test",
		Session: config.SessionConfig{
			Secret:     "test-secret",
			TTL:        time.Hour,
			CookieName: "bookeasy_session",
		},
	}
}

// The router registers prometheus collectors on the default registry, so it
// is built once and shared; harness resets the stub state between tests.
var (
	portalOnce   sync.Once
	portal       *echo.Echo
	portalErr    error
	backendStub  = &stubBackend{}
	sessionsStub = &stubSessions{}
)

func harness(t *testing.T) (*echo.Echo, *stubBackend, *stubSessions) {
	t.Helper()
	portalOnce.Do(func() {
		portal, portalErr = web.NewRouter(testConfig(), zerolog.Nop(), nil, backendStub, sessionsStub)
	})
	if portalErr != nil {
		t.Fatalf("NewRouter returned error: %v", portalErr)
	}

	*backendStub = stubBackend{t: t}
	*sessionsStub = stubSessions{byID: map[string]*ports.Session{
		"sid-admin": {
			ID:    "sid-admin",
			Token: "tok-admin",
			User:  domain.User{ID: "u-admin", FullName: "Ada Admin", Email: "ada@example.com", Role: domain.RoleAdmin},
		},
		"sid-user": {
			ID:    "sid-user",
			Token: "tok-user",
			User:  domain.User{ID: "u-user", FullName: "Uma User", Email: "uma@example.com", Role: domain.RoleUser},
		},
	}}
	return portal, backendStub, sessionsStub
}

// sessionCookie signs a cookie referencing the given session id with the
// same codec configuration the router uses.
func sessionCookie(t *testing.T, sessionID string) *http.Cookie {
	t.Helper()
	cfg := testConfig().Session
	codec := middleware.NewCookieCodec(cfg.CookieName, cfg.Secret, cfg.TTL, cfg.CookieSecure)

	e := echo.New()
	rec := httptest.NewRecorder()
	if err := codec.Issue(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), sessionID); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func get(e *echo.Echo, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sampleBookings() []domain.Booking {
	date := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	uma := domain.User{ID: "u-user", FullName: "Uma User", Email: "uma@example.com", Role: domain.RoleUser}
	return []domain.Booking{
		{
			ID:       "b1",
			Resource: domain.Resource{ID: "r1", Name: "Meeting Room Alpha"},
			User:     uma,
			Date:     date,
			Status:   domain.StatusPending,
		},
		{
			ID:       "b2",
			Resource: domain.Resource{ID: "r2", Name: "Projector Beta"},
			User:     uma,
			Date:     date,
			Status:   domain.StatusApproved,
		},
	}
}

func TestRouter_AnonymousDashboardRedirectsToLogin(t *testing.T) {
	e, _, _ := harness(t)

	rec := get(e, "/dashboard", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRouter_LoginSetsCookieAndRedirects(t *testing.T) {
	e, _, sessions := harness(t)
	sessions.loginFn = func(email, password string) (*ports.Session, error) {
		if email != "ada@example.com" || password != "secret1" {
			return nil, &domain.BackendError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
		}
		return sessions.byID["sid-admin"], nil
	}

	rec := postForm(e, "/login", url.Values{"email": {"ada@example.com"}, "password": {"secret1"}}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "bookeasy_session" || cookies[0].Value == "" {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
}

func TestRouter_LoginFailureShowsBackendMessage(t *testing.T) {
	e, _, sessions := harness(t)
	sessions.loginFn = func(string, string) (*ports.Session, error) {
		return nil, &domain.BackendError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}

	rec := postForm(e, "/login", url.Values{"email": {"x@example.com"}, "password": {"wrong-pass"}}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Invalid credentials") {
		t.Fatalf("expected backend message in page, got: %s", body)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("failed login must not set a cookie")
	}
}

func TestRouter_NonAdminResourceCreateIsDenied(t *testing.T) {
	e, _, _ := harness(t)

	rec := get(e, "/resources/create", sessionCookie(t, "sid-user"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Access Denied. Admins only.") {
		t.Fatalf("expected access-denied message, got: %s", body)
	}
	if strings.Contains(body, `name="name"`) {
		t.Fatalf("denied page must not render the resource form")
	}
}

func TestRouter_AdminApproveShowsConfirmedStatus(t *testing.T) {
	e, backend, _ := harness(t)
	backend.listAllFn = func() ([]domain.Booking, error) { return sampleBookings(), nil }
	backend.approveFn = func(id string) (*domain.Booking, error) {
		if id != "b1" {
			t.Fatalf("unexpected booking id %q", id)
		}
		updated := sampleBookings()[0]
		updated.Status = domain.StatusApproved
		return &updated, nil
	}

	rec := postForm(e, "/bookings/b1/approve", url.Values{"status": {"all"}}, sessionCookie(t, "sid-admin"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Booking approved successfully!") {
		t.Fatalf("expected success banner, got: %s", body)
	}
	if !strings.Contains(body, "data-banner") {
		t.Fatalf("banner must be transient")
	}
	if strings.Contains(body, "status-pending") {
		t.Fatalf("approved booking must not still show as pending")
	}
	if backend.approveCalls != 1 {
		t.Fatalf("expected one approve call, got %d", backend.approveCalls)
	}
	if len(backend.listAllTokens) != 1 || backend.listAllTokens[0] != "tok-admin" {
		t.Fatalf("list must be fetched with the session token, got %v", backend.listAllTokens)
	}
}

func TestRouter_RejectWithoutReasonMakesNoBackendCall(t *testing.T) {
	e, backend, _ := harness(t)
	backend.listAllFn = func() ([]domain.Booking, error) { return sampleBookings(), nil }

	rec := postForm(e, "/bookings/b1/reject", url.Values{"status": {"all"}, "reason": {""}}, sessionCookie(t, "sid-admin"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if backend.rejectCalls != 0 {
		t.Fatalf("empty reason must not reach the backend, got %d calls", backend.rejectCalls)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "A rejection reason is required.") {
		t.Fatalf("expected reason-required message, got: %s", body)
	}
	// The list still renders, untouched.
	if !strings.Contains(body, "Meeting Room Alpha") || !strings.Contains(body, "status-pending") {
		t.Fatalf("list must render unchanged, got: %s", body)
	}
}

func TestRouter_AllBookingsStatusFilter(t *testing.T) {
	e, backend, _ := harness(t)
	backend.listAllFn = func() ([]domain.Booking, error) { return sampleBookings(), nil }

	rec := get(e, "/bookings/all?status=pending", sessionCookie(t, "sid-admin"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Meeting Room Alpha") {
		t.Fatalf("pending booking missing from filtered view: %s", body)
	}
	if strings.Contains(body, "Projector Beta") {
		t.Fatalf("approved booking must be filtered out: %s", body)
	}
}

func TestRouter_AllBookingsDeniedForNonAdmin(t *testing.T) {
	e, _, _ := harness(t)

	rec := get(e, "/bookings/all", sessionCookie(t, "sid-user"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Access Denied. Admins only.") {
		t.Fatalf("expected access-denied page")
	}
}

func TestRouter_UserCancelUpdatesOwnList(t *testing.T) {
	e, backend, _ := harness(t)
	backend.listMyFn = func() ([]domain.Booking, error) { return sampleBookings(), nil }
	backend.cancelFn = func(id string) (*domain.Booking, error) {
		if id != "b2" {
			t.Fatalf("unexpected booking id %q", id)
		}
		updated := sampleBookings()[1]
		updated.Status = domain.StatusCancelled
		return &updated, nil
	}

	rec := postForm(e, "/bookings/b2/cancel", url.Values{"scope": {"my"}}, sessionCookie(t, "sid-user"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Booking cancelled successfully!") {
		t.Fatalf("expected success banner, got: %s", body)
	}
	if !strings.Contains(body, "status-cancelled") {
		t.Fatalf("cancelled booking must show its confirmed status")
	}
	if backend.cancelCalls != 1 {
		t.Fatalf("expected one cancel call, got %d", backend.cancelCalls)
	}
}

func TestRouter_LogoutClearsSessionAndCookie(t *testing.T) {
	e, _, sessions := harness(t)

	rec := postForm(e, "/logout", url.Values{}, sessionCookie(t, "sid-user"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if len(sessions.logouts) != 1 || sessions.logouts[0] != "sid-user" {
		t.Fatalf("expected sid-user logout, got %v", sessions.logouts)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected expired session cookie, got %v", cookies)
	}
}

func TestRouter_UnknownRouteRendersNotFound(t *testing.T) {
	e, _, _ := harness(t)

	rec := get(e, "/no-such-page", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page Not Found") {
		t.Fatalf("expected not-found page, got: %s", rec.Body.String())
	}
}

func TestRouter_HealthEndpoint(t *testing.T) {
	e, _, _ := harness(t)

	rec := get(e, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
