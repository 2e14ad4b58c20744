package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Payphone-Digital/storefront/internal/session"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	provider storage.Provider
	registry *session.Registry
	version  string
}

type HealthCheckResponse struct {
	Status         string                 `json:"status"`
	Version        string                 `json:"version"`
	Timestamp      time.Time              `json:"timestamp"`
	ActiveSessions int                    `json:"active_sessions"`
	Checks         map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(provider storage.Provider, registry *session.Registry, version string) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		registry: registry,
		version:  version,
	}
}

// HealthCheck pings the storage backend the sessions persist to.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now(),
		Checks:    make(map[string]HealthCheck),
	}
	if h.registry != nil {
		response.ActiveSessions = h.registry.Len()
	}

	storageStatus := h.checkStorage(ctx)
	response.Checks["storage"] = storageStatus
	if storageStatus.Status != "healthy" {
		response.Status = "unhealthy"
	}

	if guarded, ok := h.provider.(*storage.GuardedProvider); ok {
		snap := guarded.Breaker().Snapshot()
		response.Checks["circuit_breaker"] = HealthCheck{
			Status:  strings.ToLower(snap.State),
			Message: fmt.Sprintf("%d consecutive failures", snap.Failures),
		}
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}

// BasicHealth returns a simple health check (for load balancers)
func (h *HealthHandler) BasicHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   h.version,
		"timestamp": time.Now(),
	})
}

func (h *HealthHandler) checkStorage(ctx context.Context) HealthCheck {
	if h.provider == nil {
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Storage backend not initialized",
		}
	}

	if err := h.provider.Ping(ctx); err != nil {
		logger.GetLogger().Error("Storage ping failed",
			zap.String("backend", h.provider.Name()),
			zap.Error(err),
		)
		return HealthCheck{
			Status:  "unhealthy",
			Message: h.provider.Name() + " ping failed: " + err.Error(),
		}
	}

	return HealthCheck{
		Status:  "healthy",
		Message: h.provider.Name() + " backend is reachable",
	}
}
