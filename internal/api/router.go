package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/czarstudio/studio-api/docs"
	"github.com/czarstudio/studio-api/internal/api/handler"
	"github.com/czarstudio/studio-api/internal/api/middleware"
	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

// RouterConfig carries the cross-cutting dependencies of the HTTP layer.
type RouterConfig struct {
	Verifier ports.TokenVerifier
	// Users backs identity re-verification against the credential store.
	Users ports.UserRepository
	// Reverify enables re-verification on every authenticated route.
	// The /users group and the /auth/me and /auth/password routes always re-verify.
	Reverify     bool
	HealthChecks map[string]handler.DependencyCheck
	Log          zerolog.Logger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// Services groups the use cases exposed over HTTP.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Bookings ports.BookingService
	Contacts ports.ContactService
	Photos   ports.PhotoService
	Videos   ports.VideoService
	Stats    ports.StatsService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, svc Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	registerer, gatherer := cfg.Registerer, cfg.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(cfg.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "studio",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Auth middleware ---
	reverified := middleware.Auth(cfg.Verifier, middleware.WithReverify(cfg.Users))
	authed := reverified
	if !cfg.Reverify {
		authed = middleware.Auth(cfg.Verifier)
	}

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(cfg.HealthChecks)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svc.Auth, svc.Users)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, reverified)
	e.POST("/auth/password", authHandler.ChangePassword, reverified)

	// --- Leads: public capture, staff management ---
	bookingHandler := handler.NewBookingHandler(svc.Bookings)
	e.POST("/bookings", bookingHandler.Create)
	e.GET("/bookings", bookingHandler.List, authed)
	e.PATCH("/bookings", bookingHandler.Update, authed)
	e.DELETE("/bookings", bookingHandler.Delete, authed)

	contactHandler := handler.NewContactHandler(svc.Contacts)
	e.POST("/contacts", contactHandler.Create)
	e.GET("/contacts", contactHandler.List, authed)
	e.PATCH("/contacts", contactHandler.Update, authed)
	e.DELETE("/contacts", contactHandler.Delete, authed)

	// --- Portfolio ---
	photos := e.Group("/photos", authed)
	photoHandler := handler.NewPhotoHandler(svc.Photos)
	photos.GET("", photoHandler.List)
	photos.POST("", photoHandler.Create)
	photos.PATCH("", photoHandler.Update)
	photos.DELETE("", photoHandler.Delete)

	videos := e.Group("/videos", authed)
	videoHandler := handler.NewVideoHandler(svc.Videos)
	videos.GET("", videoHandler.List)
	videos.POST("", videoHandler.Create)
	videos.PATCH("", videoHandler.Update)
	videos.DELETE("", videoHandler.Delete)

	statsHandler := handler.NewStatsHandler(svc.Stats)
	e.GET("/stats", statsHandler.Dashboard, authed)

	// --- User management (admin only) ---
	users := e.Group("/users", reverified, middleware.RequireRole(domain.RoleAdmin))
	userHandler := handler.NewUserHandler(svc.Users)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PATCH("", userHandler.Update)
	users.DELETE("", userHandler.Delete)

	return e
}
