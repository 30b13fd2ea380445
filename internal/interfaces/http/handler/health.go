package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// HealthHandler answers liveness probes
type HealthHandler struct {
	BaseHandler
	pinger interface{ Ping() error }
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(pinger interface{ Ping() error }) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Check)
}

// Check reports liveness, including database reachability
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	if h.pinger != nil {
		if err := h.pinger.Ping(); err != nil {
			status = "degraded"
		}
	}
	h.Success(c, dto.Payload{"status": status})
}
