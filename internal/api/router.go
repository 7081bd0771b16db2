package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/marketplace/commodity-api/internal/api/handler"
	"github.com/marketplace/commodity-api/internal/api/middleware"
	"github.com/marketplace/commodity-api/internal/core/domain"
	"github.com/marketplace/commodity-api/internal/core/ports"
)

// Deps is everything the router needs from main.
type Deps struct {
	Log              zerolog.Logger
	JWTSecret        string
	Revoker          ports.TokenRevoker
	AuthService      ports.AuthService
	CommodityService ports.CommodityService
	Checks           []handler.DependencyCheck

	CORSOrigins []string
	// AuthRateLimit is requests per second per client IP on login and
	// register. Zero disables the limiter.
	AuthRateLimit float64

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	authHandler := handler.NewAuthHandler(d.AuthService)
	commodityHandler := handler.NewCommodityHandler(d.CommodityService)
	authMiddleware := middleware.Auth(d.JWTSecret, d.Revoker)

	// --- User routes ---
	user := e.Group("/api/user")
	limited := []echo.MiddlewareFunc{}
	if d.AuthRateLimit > 0 {
		limited = append(limited, authRateLimiter(d.AuthRateLimit))
	}
	user.POST("/register", authHandler.Register, limited...)
	user.POST("/login", authHandler.Login, limited...)
	user.POST("/logout", authHandler.Logout, authMiddleware)
	user.GET("/me", authHandler.Me, authMiddleware)
	user.PATCH("/profile", authHandler.UpdateProfile, authMiddleware)
	user.PATCH("/password", authHandler.ChangePassword, authMiddleware)

	// --- Commodity routes (any authenticated role) ---
	commodity := e.Group("/api/commodity", authMiddleware, middleware.RBAC(domain.RoleCustomer, domain.RoleBusiness))
	commodity.GET("", commodityHandler.List)
	commodity.GET("/businesss/:id", commodityHandler.ByBusiness)
	commodity.GET("/customers/:id", commodityHandler.ByCustomer)
	commodity.GET("/findByName/:name", commodityHandler.ByTitle)
	commodity.GET("/:id", commodityHandler.Get)
	commodity.POST("", commodityHandler.Create)
	commodity.POST("/enroll/:id", commodityHandler.Enroll)
	commodity.PATCH("/update/:id", commodityHandler.Update)
	commodity.DELETE("/delete/:id", commodityHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// authRateLimiter throttles credential endpoints per client IP.
func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond * 2)
	if burst < 1 {
		burst = 1
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})
}
