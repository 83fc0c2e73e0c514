// @title                       Silver Harvest API
// @version                     1.0
// @description                 Farm equipment and vehicle management with role-based access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/silverharvest/harvest-system/docs"
	"github.com/silverharvest/harvest-system/internal/api/handler"
	"github.com/silverharvest/harvest-system/internal/api/middleware"
	"github.com/silverharvest/harvest-system/internal/core/authz"
	"github.com/silverharvest/harvest-system/internal/core/ports"
	"github.com/silverharvest/harvest-system/pkg/token"
)

// Dependencies carries everything NewRouter wires into handlers.
type Dependencies struct {
	Logger    zerolog.Logger
	Tokens    *token.Service
	Gate      *authz.Gate
	Auth      ports.AuthService
	Equipment ports.EquipmentService
	Vehicles  ports.VehicleService

	// HealthChecks are pinged by /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.PingFunc

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	// AllowOrigins defaults to every origin.
	AllowOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if deps.Gate == nil {
		deps.Gate = authz.NewGate(authz.DefaultPolicy())
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, "Idempotency-Key",
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "harvest",
		Registerer: deps.Registerer,
	}))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Tokens.TTL())
	authMiddleware := middleware.Auth(deps.Tokens)

	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/signin", authHandler.SignIn)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Equipment: MANAGER, SCIENTIST ---
	equipmentHandler := handler.NewEquipmentHandler(deps.Equipment)
	equipment := e.Group("/api/v1/equipment", authMiddleware)
	equipment.POST("/save", equipmentHandler.Save, middleware.RBAC(deps.Gate, authz.EquipmentCreate))
	equipment.GET("", equipmentHandler.List, middleware.RBAC(deps.Gate, authz.EquipmentList))
	equipment.GET("/:id", equipmentHandler.Get, middleware.RBAC(deps.Gate, authz.EquipmentRead))
	equipment.PUT("/:id", equipmentHandler.Update, middleware.RBAC(deps.Gate, authz.EquipmentUpdate))
	equipment.DELETE("/:id", equipmentHandler.Delete, middleware.RBAC(deps.Gate, authz.EquipmentDelete))

	// --- Vehicles: MANAGER, ADMINISTRATIVE, OTHER ---
	vehicleHandler := handler.NewVehicleHandler(deps.Vehicles)
	vehicle := e.Group("/api/v1/vehicle", authMiddleware)
	vehicle.POST("/save", vehicleHandler.Save, middleware.RBAC(deps.Gate, authz.VehicleCreate))
	vehicle.GET("/getAll", vehicleHandler.GetAll, middleware.RBAC(deps.Gate, authz.VehicleList))
	vehicle.GET("/:vehicleCode", vehicleHandler.Get, middleware.RBAC(deps.Gate, authz.VehicleRead))
	vehicle.PUT("/update/:vehicleCode", vehicleHandler.Update, middleware.RBAC(deps.Gate, authz.VehicleUpdate))
	vehicle.DELETE("/delete/:vehicleCode", vehicleHandler.Delete, middleware.RBAC(deps.Gate, authz.VehicleDelete))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger feeds echo's request logger into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
