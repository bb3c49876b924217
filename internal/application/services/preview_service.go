package services

import (
	"context"
	"errors"
	"time"

	"github.com/zrasti/malleable-go/internal/domain/snapshots"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
	"github.com/zrasti/malleable-go/internal/infrastructure/security"
)

// PreviewService manages preview sessions: entering a session against a
// stored snapshot, reading the session back from its token, and leaving it.
// Session state lives entirely in the signed token; the service keeps
// nothing per client.
type PreviewService struct {
	store       snapshots.Store
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	jwtSecret   string
	tokenTTL    time.Duration
}

// NewPreviewService creates a new preview session service
func NewPreviewService(store snapshots.Store, logger *logging.ChanneledLogger, perfTracker *performance.Tracker, jwtSecret string, tokenTTL time.Duration) *PreviewService {
	return &PreviewService{
		store:       store,
		logger:      logger,
		perfTracker: perfTracker,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// EnterResult holds the outcome of entering a preview session
type EnterResult struct {
	Token      string `json:"-"`
	SnapshotID string `json:"snapshotId,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`

	// Retryable marks failures a refresh may fix, as opposed to a snapshot
	// that is absent or off-limits.
	Retryable bool `json:"retryable,omitempty"`
}

// Enter validates that the requested snapshot is readable and mints a preview
// token bound to it. A snapshot that is absent and one the store may not read
// produce the same failure; transient fetch errors are reported separately so
// the caller can suggest a refresh.
func (p *PreviewService) Enter(ctx context.Context, snapshotID string) *EnterResult {
	marker := p.perfTracker.StartOperation("preview_enter", snapshotID)
	defer marker.Complete()

	if _, err := p.store.Get(ctx, snapshotID); err != nil {
		marker.SetError(err)
		if errors.Is(err, snapshots.ErrNotFoundOrForbidden) {
			p.logger.Auth().Warn("Preview denied", "snapshotId", snapshotID)
			return &EnterResult{Success: false, Error: snapshots.ErrNotFoundOrForbidden.Error()}
		}
		p.logger.Auth().Error("Snapshot fetch failed entering preview", "error", err, "snapshotId", snapshotID)
		return &EnterResult{Success: false, Error: "Failed to fetch snapshot, please refresh", Retryable: true}
	}

	token, err := security.GeneratePreviewToken(snapshotID, p.jwtSecret, p.tokenTTL)
	if err != nil {
		marker.SetError(err)
		p.logger.Auth().Error("Preview token generation failed", "error", err, "snapshotId", snapshotID)
		return &EnterResult{Success: false, Error: "Token generation failed", Retryable: true}
	}

	marker.SetSuccess(true)
	p.logger.Auth().Info("Preview session started", "snapshotId", snapshotID, "ttl", p.tokenTTL)
	return &EnterResult{Token: token, SnapshotID: snapshotID, Success: true}
}

// Current resolves a preview token to its bound snapshot id. Absent,
// malformed, tampered, or expired tokens mean no active preview; they never
// surface as errors.
func (p *PreviewService) Current(token string) (string, bool) {
	return security.SnapshotIDFromPreviewToken(token, p.jwtSecret)
}

// TokenTTL reports the lifetime applied to newly minted preview tokens.
func (p *PreviewService) TokenTTL() time.Duration {
	return p.tokenTTL
}
