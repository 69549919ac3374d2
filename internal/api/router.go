package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/medilink/directory/docs"
	"github.com/medilink/directory/internal/api/handler"
	"github.com/medilink/directory/internal/api/middleware"
	"github.com/medilink/directory/internal/core/domain"
	"github.com/medilink/directory/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Sessions    ports.SessionService
	Credentials ports.CredentialService
	// Health maps backend names to their readiness probes.
	Health        map[string]handler.Pinger
	ProviderToken middleware.ProviderTokenConfig
	Log           zerolog.Logger
	// Registry receives the HTTP request metrics and backs /metrics. The
	// default Prometheus registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	promCfg := echoprometheus.MiddlewareConfig{Subsystem: "directory"}
	metricsHandler := echoprometheus.NewHandler()
	if deps.Registry != nil {
		promCfg.Registerer = deps.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Credentials, deps.Log)
	doctorHandler := handler.NewDoctorHandler(deps.Credentials, deps.Log)
	healthHandler := handler.NewHealthHandler(deps.Health)

	// --- Auth routes ---
	v1 := e.Group("/v1")
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session)
	auth.PUT("/password", authHandler.ChangePassword)
	if deps.ProviderToken.Secret != "" {
		auth.POST("/external", authHandler.External, middleware.ProviderToken(deps.ProviderToken))
	} else {
		deps.Log.Warn().Msg("PROVIDER_TOKEN_SECRET not set, external sign-in disabled")
	}

	// --- Admin routes ---
	admin := v1.Group("/admin", middleware.RequireRole(deps.Sessions, domain.RoleAdmin))
	admin.POST("/doctors", doctorHandler.Register)

	// --- Operational routes ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
