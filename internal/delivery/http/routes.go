package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pricelens/backend/config"
)

// SetupRouter creates and configures the Gin router. The MCP streamable
// endpoint mounts at /mcp next to the health and metrics routes.
func SetupRouter(cfg *config.Config, handler *Handler, mcpHandler http.Handler, registry *prometheus.Registry) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())

	// Deployment health endpoints
	router.GET("/", handler.HealthCheck)
	router.GET("/validate", handler.HealthCheck)
	router.GET("/healthz", handler.Healthz)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// MCP tool-call endpoint (POST for requests, GET for the event stream,
	// DELETE for session teardown)
	router.Any("/mcp", gin.WrapH(mcpHandler))

	return router
}
