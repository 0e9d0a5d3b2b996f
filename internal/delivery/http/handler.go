package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pricelens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	auth        *usecase.AuthService
	maskedToken string
}

// NewHandler creates a new HTTP handler. The token is only ever exposed in
// masked form on the deployment health endpoint.
func NewHandler(auth *usecase.AuthService, token string) *Handler {
	return &Handler{
		auth:        auth,
		maskedToken: maskToken(token),
	}
}

// HealthCheck returns the deployment health status, mirrored on / and
// /validate for platform probes.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      "pricelens-backend",
		"version":      "1.0.0",
		"timestamp":    time.Now().Format(time.RFC3339),
		"phone_number": h.auth.OwnerNumber(),
		"auth_token":   h.maskedToken,
	})
}

// Healthz is the minimal liveness probe.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// maskToken keeps a short prefix of the shared secret for log correlation.
func maskToken(token string) string {
	if len(token) > 10 {
		return token[:10] + "..."
	}
	return token
}
