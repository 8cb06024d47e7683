package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkboard/internal/health"
)

type HealthHandler struct {
	monitor *health.Monitor
}

func NewHealthHandler(monitor *health.Monitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// Healthcheck serves the latest probe snapshot. It never triggers a
// probe of its own, so a dead store cannot stall this endpoint.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Snapshot())
}
