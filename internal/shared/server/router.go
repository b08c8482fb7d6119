package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"realestate-backend/internal/services/health"
	"realestate-backend/internal/shared/config"
	"realestate-backend/internal/shared/metrics"
	"realestate-backend/internal/shared/server/middleware"
	"realestate-backend/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every resource handler. admin guards the
// routes that need it.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc)
}

// RouterDeps are the pieces NewRouter wires together.
type RouterDeps struct {
	Config   config.Config
	Verifier middleware.TokenVerifier
	Health   *health.Service
	// UploadsDir is served under Config.UploadsURLPrefix when non-empty.
	UploadsDir  string
	RateLimiter *middleware.RateLimiter
	Handlers    []RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rule:    middleware.PerMinute(deps.Config.RateLimitPerMin),
			Limiter: deps.RateLimiter,
		}),
		middleware.BodyLimit(deps.Config.MaxUploadBytes),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	r.GET("/health/ready", func(c *gin.Context) {
		if err := healthSvc.Ready(c.Request.Context()); err != nil {
			respond.Error(c, http.StatusServiceUnavailable, "not_ready", "Service unavailable", nil)
			return
		}
		respond.OK(c, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())

	if deps.UploadsDir != "" {
		r.Static(deps.Config.UploadsURLPrefix, deps.UploadsDir)
	}

	admin := middleware.RequireAdmin(deps.Verifier)
	api := r.Group("/api")
	for _, h := range deps.Handlers {
		h.RegisterRoutes(api, admin)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
