package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/davsiu2102/clinical-records-api/internal/api/handler"
	"github.com/davsiu2102/clinical-records-api/internal/api/middleware"
	"github.com/davsiu2102/clinical-records-api/internal/core/ports"
	"github.com/davsiu2102/clinical-records-api/internal/core/service"
	"github.com/davsiu2102/clinical-records-api/internal/pkg/token"
)

// Deps carries everything the router needs. Repositories are interfaces so
// tests can drive the full HTTP surface against in-memory implementations.
type Deps struct {
	DB       *sql.DB // readiness probe; may be nil in tests
	Users    ports.UserRepository
	Patients ports.PatientRepository
	Codec    *token.Codec
	Logger   zerolog.Logger
	// Registry overrides the global Prometheus registry for the request
	// metrics; tests need an isolated one per router instance.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "clinical",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Users, deps.Codec, deps.Logger)
	authHandler := handler.NewAuthHandler(authService)
	patientService := service.NewPatientService(deps.Patients, deps.Logger)
	patientHandler := handler.NewPatientHandler(patientService)
	guard := middleware.Auth(deps.Codec, deps.Users)

	// --- Auth routes ---
	e.POST("/registro", authHandler.Register)
	e.POST("/token", authHandler.Login)
	e.GET("/usuarios/me", authHandler.Me, guard)

	// --- Patient routes (all guarded) ---
	e.POST("/paciente", patientHandler.Create, guard)
	e.GET("/pacientes", patientHandler.List, guard)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	if deps.DB != nil {
		readiness := handler.NewReadinessHandler(deps.DB)
		e.GET("/health/ready", readiness.Readiness) // readiness – are dependencies up?
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))

	return e
}
