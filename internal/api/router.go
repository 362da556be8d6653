// Package api serves facts and connection resources over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/voxpupuli/puppet-networkmanager/internal/collector"
	"github.com/voxpupuli/puppet-networkmanager/internal/health"
	"github.com/voxpupuli/puppet-networkmanager/internal/logging"
	"github.com/voxpupuli/puppet-networkmanager/internal/resource"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewRouter builds the gin engine with all routes.
func NewRouter(registry *collector.Registry, provider *resource.Provider, confine *collector.Confine, monitor *health.Monitor, version string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = logging.L("api")
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware(logger))

	h := &Handler{
		registry: registry,
		provider: provider,
		confine:  confine,
		monitor:  monitor,
		version:  version,
		logger:   logger,
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health)

		facts := v1.Group("/facts")
		{
			facts.GET("", h.Facts)
			facts.GET("/*query", h.FactQuery)
		}

		v1.GET("/types/"+resource.TypeName, h.DescribeType)

		connections := v1.Group("/resources/" + resource.TypeName)
		{
			connections.GET("", h.Connections)
			connections.GET("/:name", h.Connection)
		}
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Code: "NOT_FOUND", Message: "no such route"})
	})

	return r
}

// LoggingMiddleware logs each request at debug, and at warn when the
// response status is 400 or above.
func LoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int64(logging.KeyDurationMs, time.Since(start).Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
		}

		if status >= http.StatusBadRequest {
			logger.Warn("http request failed", fields...)
			return
		}
		logger.Debug("http request", fields...)
	}
}
