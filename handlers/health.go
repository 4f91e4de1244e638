package handlers

import (
	"net/http"
	"slices"

	"servicebook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last snapshot of the backing services.
type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	if h.Monitor == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm servicebook"})
		return
	}

	s := h.Monitor.Status()
	healthy := s.Mongo && !slices.Contains(s.Redis, false)
	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "services": s})
}
