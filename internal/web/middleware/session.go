package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bookeasy/portal/internal/core/ports"
)

// sessionKey is the echo context key under which the restored session lives.
const sessionKey = "portal_session"

// CookieCodec seals the opaque session id into an HS256-signed cookie. The
// backend bearer token never leaves the server side; the browser only holds
// this reference.
type CookieCodec struct {
	Name   string
	Secret []byte
	TTL    time.Duration
	Secure bool
}

func NewCookieCodec(name, secret string, ttl time.Duration, secure bool) *CookieCodec {
	return &CookieCodec{Name: name, Secret: []byte(secret), TTL: ttl, Secure: secure}
}

// Issue writes the session cookie for the given session id.
func (cc *CookieCodec) Issue(c echo.Context, sessionID string) error {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(cc.TTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.Secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     cc.Name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cc.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (cc *CookieCodec) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID extracts and verifies the session id from the request cookie.
// Absent or invalid cookies yield an empty id, not an error: an anonymous
// visitor is a normal state.
func (cc *CookieCodec) SessionID(c echo.Context) string {
	cookie, err := c.Cookie(cc.Name)
	if err != nil || cookie.Value == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}

	sid, _ := claims["sid"].(string)
	return sid
}

// Access policies for the Session guard. The admin-only pages deliberately
// perform their own role check and render an access-denied message, so the
// guard itself only distinguishes public from authenticated.
const (
	// Optional restores the session when present but never redirects.
	// Public pages use it so the navbar can reflect authentication state.
	Optional = false
	// Required redirects anonymous visitors to /login (See Other, so the
	// guarded URL is not revisited via back-navigation).
	Required = true
)

// Session restores the persisted session before any route decision and, when
// required, turns away anonymous visitors. Restoration is synchronous, so a
// redirect can never be issued for a visitor whose session has not been
// looked up yet.
func Session(sessions ports.SessionService, codec *CookieCodec, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A restore failure of any kind leaves the visitor anonymous
			// rather than failing the page.
			if sid := codec.SessionID(c); sid != "" {
				if sess, err := sessions.Restore(c.Request().Context(), sid); err == nil && sess != nil {
					c.Set(sessionKey, sess)
				}
			}

			if required && CurrentSession(c) == nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session restored by the Session middleware, or
// nil for anonymous visitors.
func CurrentSession(c echo.Context) *ports.Session {
	sess, _ := c.Get(sessionKey).(*ports.Session)
	return sess
}
