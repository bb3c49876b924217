package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zrasti/malleable-go/internal/application/services"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
	"github.com/zrasti/malleable-go/internal/presentation/templates"
)

// PageHandlers contains the page rendering HTTP handlers
type PageHandlers struct {
	pageService    *services.PageService
	previewService *services.PreviewService
	authHandlers   *AuthHandlers
	renderer       *templates.PageRenderer
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewPageHandlers creates page handlers with injected dependencies
func NewPageHandlers(pageService *services.PageService, previewService *services.PreviewService, authHandlers *AuthHandlers, renderer *templates.PageRenderer, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *PageHandlers {
	return &PageHandlers{
		pageService:    pageService,
		previewService: previewService,
		authHandlers:   authHandlers,
		renderer:       renderer,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetHome handles GET / - renders the page in one of three states: the
// snapshot bound to the client's preview session, the live editing view for
// an authenticated editor, or the template defaults.
func (h *PageHandlers) GetHome(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_home_request", c.ClientIP())
	defer marker.Complete()

	var data *services.RenderData

	token, _ := c.Cookie(PreviewCookie)
	if snapshotID, ok := h.previewService.Current(token); ok {
		data = h.pageService.RenderSnapshot(c.Request.Context(), snapshotID)
	} else {
		data = h.pageService.RenderDefault(h.authHandlers.IsEditor(c))
	}

	status := http.StatusOK
	if data.Failed {
		if data.Retryable {
			status = http.StatusBadGateway
		} else {
			status = http.StatusNotFound
		}
	}

	marker.SetSuccess(!data.Failed)
	c.Data(status, "text/html; charset=utf-8", []byte(h.renderer.Render(data)))
}
