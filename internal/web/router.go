package web

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bookeasy/portal/internal/core/ports"
	"github.com/bookeasy/portal/internal/pkg/config"
	"github.com/bookeasy/portal/internal/web/handler"
	"github.com/bookeasy/portal/internal/web/middleware"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, log zerolog.Logger, rdb *redis.Client, backend ports.BackendClient, sessions ports.SessionService) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("bookeasy_portal"))

	e.StaticFS("/static", staticFS())

	// --- Session guard, parameterized by access policy ---
	codec := middleware.NewCookieCodec(cfg.Session.CookieName, cfg.Session.Secret, cfg.Session.TTL, cfg.Session.CookieSecure)
	public := middleware.Session(sessions, codec, middleware.Optional)
	guarded := middleware.Session(sessions, codec, middleware.Required)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessions, codec)
	homeHandler := handler.NewHomeHandler(backend, log)
	resourceHandler := handler.NewResourceHandler(backend, log)
	bookingHandler := handler.NewBookingHandler(backend, log)

	// --- Public pages ---
	e.GET("/", homeHandler.Home, public)
	e.GET("/login", authHandler.LoginPage, public)
	e.POST("/login", authHandler.Login, public)
	e.GET("/register", authHandler.RegisterPage, public)
	e.POST("/register", authHandler.Register, public)
	e.POST("/logout", authHandler.Logout, public)

	// --- Authenticated pages (admin checks happen inside the pages) ---
	e.GET("/dashboard", homeHandler.Dashboard, guarded)

	e.GET("/resources", resourceHandler.List, guarded)
	e.GET("/resources/create", resourceHandler.CreatePage, guarded)
	e.POST("/resources/create", resourceHandler.Create, guarded)
	e.GET("/resources/edit/:id", resourceHandler.EditPage, guarded)
	e.POST("/resources/edit/:id", resourceHandler.Edit, guarded)
	e.POST("/resources/:id/delete", resourceHandler.Delete, guarded)
	e.POST("/resources/:id/book", resourceHandler.Book, guarded)

	e.GET("/bookings/my", bookingHandler.My, guarded)
	e.GET("/bookings/all", bookingHandler.All, guarded)
	e.POST("/bookings/:id/approve", bookingHandler.Approve, guarded)
	e.POST("/bookings/:id/reject", bookingHandler.Reject, guarded)
	e.POST("/bookings/:id/cancel", bookingHandler.Cancel, guarded)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(rdb).Readiness)

	// --- Catch-all ---
	e.RouteNotFound("/*", handler.NotFound, public)

	return e, nil
}
