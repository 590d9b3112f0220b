package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookeasy/portal/internal/core/domain"
	"github.com/bookeasy/portal/internal/core/ports"
	"github.com/bookeasy/portal/internal/metrics"
	"github.com/bookeasy/portal/internal/web/middleware"
)

// AuthHandler serves the login and registration pages and owns the session
// cookie lifecycle. All durable session writes go through the session
// service; no other handler touches session state.
type AuthHandler struct {
	sessions ports.SessionService
	cookies  *middleware.CookieCodec
}

func NewAuthHandler(sessions ports.SessionService, cookies *middleware.CookieCodec) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookies: cookies}
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", loginPage{basePage: base(c, "Login")})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login", loginPage{
			basePage: withError(base(c, "Login"), "Login failed"),
		})
	}
	page := loginPage{basePage: base(c, "Login"), Email: form.Email}

	if err := c.Validate(&form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusOK, "login", page)
	}

	sess, err := h.sessions.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		// Prior session state, if any, is untouched.
		page.Error = domain.ErrorMessage(err, "Login failed")
		return c.Render(http.StatusOK, "login", page)
	}

	if err := h.cookies.Issue(c, sess.ID); err != nil {
		return err
	}
	metrics.SessionsStartedTotal.WithLabelValues("login").Inc()
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", registerPage{
		basePage: base(c, "Register"),
		Role:     domain.RoleUser,
	})
}

// Register handles POST /register. A successful registration issues a token,
// so it doubles as a login.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register", registerPage{
			basePage: withError(base(c, "Register"), "Registration failed"),
			Role:     domain.RoleUser,
		})
	}
	page := registerPage{
		basePage: base(c, "Register"),
		FullName: form.FullName,
		Email:    form.Email,
		Role:     form.Role,
	}

	if err := c.Validate(&form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusOK, "register", page)
	}

	sess, err := h.sessions.Register(c.Request().Context(), ports.Registration{
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Registration failed")
		return c.Render(http.StatusOK, "register", page)
	}

	if err := h.cookies.Issue(c, sess.ID); err != nil {
		return err
	}
	metrics.SessionsStartedTotal.WithLabelValues("register").Inc()
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout handles POST /logout: erase the persisted session, expire the
// cookie, land on the login page. No backend call is made.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := currentSession(c); sess != nil {
		if err := h.sessions.Logout(c.Request().Context(), sess.ID); err != nil {
			return err
		}
	}
	h.cookies.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func withError(p basePage, msg string) basePage {
	p.Error = msg
	return p
}
