package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zrasti/malleable-go/internal/application/services"
	"github.com/zrasti/malleable-go/internal/domain/entities/page"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
	"github.com/zrasti/malleable-go/internal/presentation/http/middleware"
)

// SnapshotHandlers contains snapshot submission HTTP handlers
type SnapshotHandlers struct {
	snapshotService *services.SnapshotService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewSnapshotHandlers creates snapshot handlers with injected dependencies
func NewSnapshotHandlers(snapshotService *services.SnapshotService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SnapshotHandlers {
	return &SnapshotHandlers{
		snapshotService: snapshotService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// PostSnapshot handles POST /api/v1/snapshots - persists a captured edit-set
// and returns the generated snapshot id.
func (h *SnapshotHandlers) PostSnapshot(c *gin.Context) {
	start := time.Now()
	clientID := middleware.GetClientID(c)
	marker := h.perfTracker.StartOperation("post_snapshot_request", clientID)
	defer marker.Complete()

	var edits page.EditSet
	if err := c.ShouldBindJSON(&edits); err != nil {
		h.logger.Store().Error("Snapshot request JSON binding failed", "error", err.Error(), "clientId", clientID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	seen := make(map[string]bool, len(edits))
	for _, edit := range edits {
		if edit.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Every edit needs a region id"})
			return
		}
		if seen[edit.ID] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate region id: " + edit.ID})
			return
		}
		seen[edit.ID] = true
	}

	result := h.snapshotService.Submit(c.Request.Context(), clientID, edits)

	if result.Pending {
		marker.SetSuccess(true)
		c.JSON(http.StatusAccepted, gin.H{"status": "pending"})
		return
	}

	if !result.Success {
		marker.SetSuccess(false)
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error})
		return
	}

	h.logger.Store().Info("Snapshot submitted", "snapshotId", result.SnapshotID, "clientId", clientID)
	marker.SetSuccess(true)

	h.logger.Perf().Info("Performance for post snapshot request",
		"duration", time.Since(start),
		"clientId", clientID,
		"editCount", len(edits))

	c.JSON(http.StatusOK, gin.H{"snapshotId": result.SnapshotID})
}
