package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zrasti/malleable-go/internal/application/services"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
	"github.com/zrasti/malleable-go/internal/presentation/templates"
)

// PreviewCookie carries the signed preview session token.
const PreviewCookie = "preview_session"

// PreviewHandlers contains preview session HTTP handlers
type PreviewHandlers struct {
	previewService *services.PreviewService
	pageService    *services.PageService
	renderer       *templates.PageRenderer
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewPreviewHandlers creates preview handlers with injected dependencies
func NewPreviewHandlers(previewService *services.PreviewService, pageService *services.PageService, renderer *templates.PageRenderer, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *PreviewHandlers {
	return &PreviewHandlers{
		previewService: previewService,
		pageService:    pageService,
		renderer:       renderer,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetEnterPreview handles GET /api/v1/preview/:snapshotId - the share link.
// On success it binds the client to the snapshot via a signed cookie and
// redirects to the page; on failure it renders the preview error view.
func (h *PreviewHandlers) GetEnterPreview(c *gin.Context) {
	snapshotID := c.Param("snapshotId")
	marker := h.perfTracker.StartOperation("get_enter_preview_request", snapshotID)
	defer marker.Complete()

	result := h.previewService.Enter(c.Request.Context(), snapshotID)

	if !result.Success {
		marker.SetSuccess(false)

		status := http.StatusNotFound
		if result.Retryable {
			status = http.StatusBadGateway
		}

		data := &services.RenderData{
			Title:        h.pageService.Template().Title,
			SnapshotID:   snapshotID,
			Failed:       true,
			FailureError: result.Error,
			Retryable:    result.Retryable,
		}
		c.Data(status, "text/html; charset=utf-8", []byte(h.renderer.Render(data)))
		return
	}

	c.SetCookie(
		PreviewCookie,
		result.Token,
		int(h.previewService.TokenTTL().Seconds()),
		"/",
		"",
		false,
		true,
	)

	marker.SetSuccess(true)
	h.logger.Auth().Info("Preview cookie issued", "snapshotId", snapshotID)

	c.Redirect(http.StatusFound, "/")
}

// GetExitPreview handles GET /api/v1/preview/exit - clears the preview
// session. Idempotent; exiting with no active session is still a redirect
// home.
func (h *PreviewHandlers) GetExitPreview(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_exit_preview_request", "")
	defer marker.Complete()

	c.SetCookie(PreviewCookie, "", -1, "/", "", false, true)

	marker.SetSuccess(true)
	h.logger.Auth().Info("Preview session cleared")

	c.Redirect(http.StatusFound, "/")
}
