package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/modgate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

const readinessTimeout = 2 * time.Second

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status" example:"healthy"`
	Version     string `json:"version" example:"1.0.0"`
	Environment string `json:"environment" example:"production"`
}

// ReadyResponse is returned by GET /ready.
type ReadyResponse struct {
	Status string            `json:"status" example:"ready"`
	Checks map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	version     string
	environment string
	store       ratelimit.Pinger
	logger      logger.Interface
}

// NewHealthHandler creates a health handler. store may be nil when the rate
// limiter keeps its state in process.
func NewHealthHandler(version, environment string, store ratelimit.Pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{
		version:     version,
		environment: environment,
		store:       store,
		logger:      logger,
	}
}

// Health reports liveness
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Version:     h.version,
		Environment: h.environment,
	})
}

// Ready reports whether the rate limit store is reachable
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, ReadyResponse{Status: "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warnw("readiness check failed", "check", "rate_limit_store", "error", err)
		c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: map[string]string{"rate_limit_store": "unreachable"},
		})
		return
	}

	c.JSON(http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: map[string]string{"rate_limit_store": "ok"},
	})
}
