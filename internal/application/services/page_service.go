package services

import (
	"context"
	"errors"

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
	"github.com/zrasti/malleable-go/internal/domain/snapshots"
	"github.com/zrasti/malleable-go/internal/infrastructure/caching"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
)

// PageService orchestrates page rendering: it resolves which edit-set (if
// any) overlays the template and hands the renderer the merged regions.
type PageService struct {
	store       snapshots.Store
	cache       *caching.EditSetStore
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	template    *page.Template
}

// NewPageService creates a new page rendering service
func NewPageService(store snapshots.Store, cache *caching.EditSetStore, logger *logging.ChanneledLogger, perfTracker *performance.Tracker, template *page.Template) *PageService {
	return &PageService{
		store:       store,
		cache:       cache,
		logger:      logger,
		perfTracker: perfTracker,
		template:    template,
	}
}

// RenderData holds everything the page renderer needs for one request
type RenderData struct {
	Title      string
	Regions    []page.MergedRegion
	SnapshotID string

	// Previewing is true when the regions carry a snapshot overlay.
	Previewing bool
	// Editable is true when regions render as live editing surfaces.
	Editable bool

	// Failed is set when the overlay snapshot could not be loaded; the page
	// degrades to an error view instead of silently showing defaults.
	Failed       bool
	FailureError string
	Retryable    bool
}

// Template exposes the page template for capture-side validation.
func (p *PageService) Template() *page.Template {
	return p.template
}

// RenderDefault produces the page with template defaults and no overlay.
func (p *PageService) RenderDefault(editable bool) *RenderData {
	return &RenderData{
		Title:    p.template.Title,
		Regions:  p.template.Merge(nil),
		Editable: editable,
	}
}

// RenderSnapshot produces the page with the named snapshot's edit-set
// overlaid onto the template. Fetch failures degrade to a failed render
// rather than falling back to defaults.
func (p *PageService) RenderSnapshot(ctx context.Context, snapshotID string) *RenderData {
	marker := p.perfTracker.StartOperation("page_render_snapshot", snapshotID)
	defer marker.Complete()

	edits, err := p.fetchEditSet(ctx, snapshotID)
	if err != nil {
		marker.SetError(err)
		if errors.Is(err, snapshots.ErrNotFoundOrForbidden) {
			p.logger.Content().Warn("Preview render denied", "snapshotId", snapshotID)
			return &RenderData{
				Title:        p.template.Title,
				SnapshotID:   snapshotID,
				Failed:       true,
				FailureError: snapshots.ErrNotFoundOrForbidden.Error(),
			}
		}
		p.logger.Content().Error("Preview render fetch failed", "error", err, "snapshotId", snapshotID)
		return &RenderData{
			Title:        p.template.Title,
			SnapshotID:   snapshotID,
			Failed:       true,
			FailureError: "Failed to fetch snapshot, please refresh",
			Retryable:    true,
		}
	}

	marker.SetSuccess(true)
	return &RenderData{
		Title:      p.template.Title,
		Regions:    p.template.Merge(edits),
		SnapshotID: snapshotID,
		Previewing: true,
	}
}

// fetchEditSet loads an edit-set through the cache. Snapshots are immutable,
// so a cache hit never needs revalidation.
func (p *PageService) fetchEditSet(ctx context.Context, snapshotID string) (page.EditSet, error) {
	if edits, ok := p.cache.Get(snapshotID); ok {
		return edits, nil
	}

	edits, err := p.store.Get(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	p.cache.Set(snapshotID, edits)
	return edits, nil
}
