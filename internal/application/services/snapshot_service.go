// Package services provides application-level orchestration services
package services

import (
	"context"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
	"github.com/zrasti/malleable-go/internal/domain/snapshots"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
)

// SnapshotService handles snapshot submission workflows
type SnapshotService struct {
	store       snapshots.Store
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	sanitizer   *bluemonday.Policy

	// inflight tracks clients with a snapshot write currently in progress.
	// A second trigger from the same client while one is pending is
	// suppressed rather than queued.
	inflight   map[string]struct{}
	inflightMu sync.Mutex
}

// NewSnapshotService creates a new snapshot submission service
func NewSnapshotService(store snapshots.Store, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SnapshotService {
	return &SnapshotService{
		store:       store,
		logger:      logger,
		perfTracker: perfTracker,
		sanitizer:   bluemonday.StrictPolicy(),
		inflight:    make(map[string]struct{}),
	}
}

// SubmitResult holds the outcome of a snapshot submission
type SubmitResult struct {
	SnapshotID string `json:"snapshotId,omitempty"`
	Pending    bool   `json:"pending,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// Submit persists a captured edit-set and returns the generated snapshot id.
// Per client at most one write is in flight; while one is pending, further
// submissions from that client return a pending result and never reach the
// store.
func (s *SnapshotService) Submit(ctx context.Context, clientID string, edits page.EditSet) *SubmitResult {
	marker := s.perfTracker.StartOperation("snapshot_submit", clientID)
	defer marker.Complete()

	s.inflightMu.Lock()
	if _, busy := s.inflight[clientID]; busy {
		s.inflightMu.Unlock()
		marker.AddMetadata("suppressed", true)
		s.logger.Store().Info("Suppressed duplicate snapshot submission", "clientId", clientID)
		return &SubmitResult{Pending: true, Success: true}
	}
	s.inflight[clientID] = struct{}{}
	s.inflightMu.Unlock()

	defer func() {
		s.inflightMu.Lock()
		delete(s.inflight, clientID)
		s.inflightMu.Unlock()
	}()

	sanitized := s.sanitizeEdits(edits)

	snapshotID, err := s.store.Put(ctx, sanitized)
	if err != nil {
		marker.SetError(err)
		s.logger.Store().Error("Snapshot write failed", "error", err, "clientId", clientID)
		return &SubmitResult{Success: false, Error: "Failed to save snapshot"}
	}

	marker.SetSuccess(true)
	marker.AddMetadata("snapshotId", snapshotID)
	s.logger.Store().Info("Snapshot persisted", "snapshotId", snapshotID, "regions", len(sanitized), "clientId", clientID)
	return &SubmitResult{SnapshotID: snapshotID, Success: true}
}

// sanitizeEdits strips any markup from submitted region texts. Regions hold
// plain text only; the strict policy drops every tag, then entities escaped
// by the policy are folded back so stored text round-trips verbatim.
func (s *SnapshotService) sanitizeEdits(edits page.EditSet) page.EditSet {
	sanitized := make(page.EditSet, 0, len(edits))
	for _, edit := range edits {
		text := html.UnescapeString(s.sanitizer.Sanitize(edit.Text))
		sanitized = append(sanitized, page.Edit{
			ID:   strings.TrimSpace(edit.ID),
			Text: text,
		})
	}
	return sanitized
}
