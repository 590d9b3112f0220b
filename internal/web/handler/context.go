package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bookeasy/portal/internal/core/domain"
	"github.com/bookeasy/portal/internal/core/ports"
	"github.com/bookeasy/portal/internal/web/middleware"
)

// currentSession returns the session the guard middleware restored, or nil
// for anonymous visitors.
func currentSession(c echo.Context) *ports.Session {
	return middleware.CurrentSession(c)
}

// currentUser returns the viewer's identity snapshot, or nil.
func currentUser(c echo.Context) *domain.User {
	if sess := currentSession(c); sess != nil {
		return &sess.User
	}
	return nil
}

// base builds the shared page fields for the current viewer.
func base(c echo.Context, title string) basePage {
	return basePage{Title: title, User: currentUser(c)}
}
