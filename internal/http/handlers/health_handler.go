package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelbuddy/internal/modules/health"
)

type HealthHandler struct {
	health *health.Service
}

func NewHealthHandler(svc *health.Service) *HealthHandler {
	return &HealthHandler{health: svc}
}

// Live handles GET /health.
func (h *HealthHandler) Live(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready handles GET /ready.
func (h *HealthHandler) Ready(c *gin.Context) {
	details, err := h.health.Ready(c.Request.Context())
	if err != nil {
		log.Printf("readiness: %v", err)
		writeJSON(c, http.StatusServiceUnavailable, gin.H{"status": "not_ready", "details": details})
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ready"})
}
