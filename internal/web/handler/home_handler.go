package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookeasy/portal/internal/core/domain"
	"github.com/bookeasy/portal/internal/core/ports"
)

// HomeHandler serves the public landing page and the dashboard.
type HomeHandler struct {
	backend ports.BackendClient
	logger  zerolog.Logger
}

func NewHomeHandler(backend ports.BackendClient, logger zerolog.Logger) *HomeHandler {
	return &HomeHandler{backend: backend, logger: logger}
}

// Home handles GET /. Public; the calls to action route anonymous visitors
// to the login page instead.
func (h *HomeHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", homePage{basePage: base(c, "Welcome to BookEasy")})
}

// Dashboard handles GET /dashboard: identity card, role-specific quick
// actions, and for plain users a summary of their bookings.
func (h *HomeHandler) Dashboard(c echo.Context) error {
	sess := currentSession(c)
	page := dashboardPage{basePage: base(c, "Dashboard")}

	if !sess.User.IsAdmin() {
		bookings, err := h.backend.ListMyBookings(c.Request().Context(), sess.Token)
		if err != nil {
			// The dashboard still renders; only the summary is missing.
			h.logger.Warn().Err(err).Str("user_id", sess.User.ID).Msg("dashboard booking summary unavailable")
			page.Error = domain.ErrorMessage(err, "Failed to fetch bookings")
		} else {
			page.Bookings = bookings
		}
	}

	return c.Render(http.StatusOK, "dashboard", page)
}

// NotFound renders the catch-all page.
func NotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "notfound", basePage{Title: "Page Not Found", User: currentUser(c)})
}
