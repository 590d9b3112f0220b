package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookeasy/portal/internal/core/domain"
)

// errorView feeds the error and notfound templates; it carries the same
// base fields every page template expects.
type errorView struct {
	Title    string
	User     *domain.User
	Error    string
	Success  string
	Redirect string
	Code     int
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders error
// pages instead of JSON envelopes, logging unexpected errors without
// leaking their details to the visitor. No error is fatal to the process.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			code = he.Code
		case errors.Is(err, domain.ErrUnauthenticated):
			code = http.StatusUnauthorized
		case errors.Is(err, domain.ErrForbidden):
			code = http.StatusForbidden
		case errors.Is(err, domain.ErrNotFound):
			code = http.StatusNotFound
		}

		if code == http.StatusNotFound {
			_ = c.Render(code, "notfound", errorView{Title: "Page Not Found", Code: code})
			return
		}

		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		_ = c.Render(code, "error", errorView{
			Title: "Something went wrong",
			Error: "Something went wrong. Please try again.",
			Code:  code,
		})
	}
}
