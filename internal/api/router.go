package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/notifeed/notification-service/docs"
	"github.com/notifeed/notification-service/internal/api/handler"
	"github.com/notifeed/notification-service/internal/api/middleware"
	"github.com/notifeed/notification-service/internal/core/ports"
	"github.com/notifeed/notification-service/internal/infrastructure/http/handlers"
)

// Deps carries everything the HTTP layer needs. Readiness entries that are
// nil are left out of the readiness check. Metrics are only mounted when
// Registerer is set.
type Deps struct {
	AuthService         ports.AuthService
	NotificationService ports.NotificationService
	Readiness           map[string]handlers.Pinger
	Logger              zerolog.Logger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if d.Registerer != nil {
		// Outside the logger, which renders handler errors, so the recorded
		// status is the one sent to the client.
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "notifeed",
			Subsystem:  "http",
			Registerer: d.Registerer,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: d.Gatherer,
		}))
	}
	e.Use(middleware.Tracing())
	e.Use(middleware.RequestLogger(d.Logger))

	// --- Health checks (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// --- Notification routes (bearer token required) ---
	notificationHandler := handler.NewNotificationHandler(d.NotificationService)
	notifications := e.Group("/notifications", middleware.Bearer(d.AuthService))
	notifications.POST("", notificationHandler.Create)
	notifications.GET("", notificationHandler.List)
	notifications.DELETE("/:id", notificationHandler.Delete)

	return e
}
