// Package api wires the HTTP surface of the service: the gin router, the
// route handlers, and the middleware stack (request logging, admin
// authentication, and the per-endpoint rate limiters).
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/credexa/creditline-api/internal/audit"
	"github.com/credexa/creditline-api/internal/config"
	"github.com/credexa/creditline-api/internal/creditline"
	"github.com/credexa/creditline-api/internal/metrics"
	"github.com/credexa/creditline-api/internal/ratelimit"
)

// Mount paths the rate-limit profiles reference. Defined once so the quota
// tables and the router cannot drift apart.
const (
	PathCreditLines = "/api/credit-lines"
	PathRiskScore   = "/api/risk-score"
	PathAdmin       = "/api/admin"
)

// Deps collects everything the router needs. Store lifetime is owned by the
// caller; the router only borrows it.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   ratelimit.CounterStore
	Profile ratelimit.Profile
	Metrics *metrics.Collector
	Repo    *creditline.Repository
	Audit   *audit.Trail
}

// NewRouter builds the gin engine with all routes registered. One limiter
// middleware per mount path, all bound to the shared counter store; health
// and metrics stay unthrottled.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(d.Logger))

	r.GET("/healthz", handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiters := ratelimit.NewLimiters(d.Profile, d.Store, d.Logger, d.Metrics)

	clh := &creditLineHandler{repo: d.Repo, audit: d.Audit}
	cl := r.Group(PathCreditLines, limiters.For(PathCreditLines))
	{
		cl.POST("", clh.create)
		cl.GET("", clh.list)
		cl.GET("/:id", clh.get)
		cl.PATCH("/:id", clh.update)
		cl.DELETE("/:id", adminAuth(d.Config.AdminKey), clh.delete)
	}

	rs := r.Group(PathRiskScore, limiters.For(PathRiskScore))
	rs.GET("/:customerId", handleRiskScore)

	admin := r.Group(PathAdmin, limiters.For(PathAdmin), adminAuth(d.Config.AdminKey))
	admin.POST("/rate-limit/reset", handleRateLimitReset(d.Store, d.Audit))

	return r
}

// requestLogger logs one structured line per completed request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client", ratelimit.ClientKey(c)),
		)
	}
}
