package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
)

// recentMetricsWindow bounds the slice of completed operations the health
// endpoint reports on.
const recentMetricsWindow = 5 * time.Minute

// HealthHandlers contains service health HTTP handlers
type HealthHandlers struct {
	perfTracker *performance.Tracker
}

// NewHealthHandlers creates health handlers with injected dependencies
func NewHealthHandlers(perfTracker *performance.Tracker) *HealthHandlers {
	return &HealthHandlers{perfTracker: perfTracker}
}

// GetHealth handles GET /api/v1/health - liveness plus operation metrics
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	recent := h.perfTracker.GetRecentMetrics(recentMetricsWindow)

	succeeded := 0
	var totalDuration time.Duration
	for _, m := range recent {
		if m.Success {
			succeeded++
		}
		totalDuration += m.Duration
	}

	var avgDuration time.Duration
	if len(recent) > 0 {
		avgDuration = totalDuration / time.Duration(len(recent))
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"stats":  h.perfTracker.GetOverallStats(),
		"recentOperations": gin.H{
			"window":      recentMetricsWindow.String(),
			"completed":   len(recent),
			"succeeded":   succeeded,
			"avgDuration": avgDuration.String(),
		},
		"activeOperations": len(h.perfTracker.GetActiveOperations()),
	})
}
