// Package container provides dependency injection for all singleton services
package container

import (
	"context"
	"fmt"

	"github.com/zrasti/malleable-go/internal/application/services"
	"github.com/zrasti/malleable-go/internal/domain/entities/page"
	"github.com/zrasti/malleable-go/internal/domain/snapshots"
	"github.com/zrasti/malleable-go/internal/infrastructure/caching"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
	"github.com/zrasti/malleable-go/internal/infrastructure/persistence/blob"
	"github.com/zrasti/malleable-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services (stateless singletons)
	SnapshotService *services.SnapshotService
	PreviewService  *services.PreviewService
	PageService     *services.PageService
	AuthService     *services.AuthService

	// Infrastructure Dependencies
	SnapshotStore snapshots.Store
	EditSetCache  *caching.EditSetStore
	Logger        *logging.ChanneledLogger
	PerfTracker   *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(ctx context.Context, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) (*Container, error) {
	store, err := newSnapshotStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	editSetCache := caching.NewEditSetStore(config.EditSetCacheTTL)
	template := page.DefaultTemplate()

	return &Container{
		SnapshotService: services.NewSnapshotService(store, logger, perfTracker),
		PreviewService:  services.NewPreviewService(store, logger, perfTracker, config.JWTSecret, config.PreviewTokenTTL),
		PageService:     services.NewPageService(store, editSetCache, logger, perfTracker, template),
		AuthService:     services.NewAuthService(logger, perfTracker, config.EditorPassword, config.JWTSecret, config.AuthTokenTTL),

		SnapshotStore: store,
		EditSetCache:  editSetCache,
		Logger:        logger,
		PerfTracker:   perfTracker,
	}, nil
}

// newSnapshotStore constructs the configured snapshot store backend.
func newSnapshotStore(ctx context.Context) (snapshots.Store, error) {
	switch config.SnapshotStoreBackend {
	case "sqlite":
		return blob.NewSQLiteStore(ctx, config.SnapshotDBPath, config.SnapshotBucket)
	case "bolt":
		return blob.NewBoltStore(config.SnapshotDBPath, config.SnapshotBucket)
	default:
		return nil, fmt.Errorf("unknown snapshot store backend %q", config.SnapshotStoreBackend)
	}
}

// Close releases infrastructure resources held by the container.
func (c *Container) Close() error {
	if c.SnapshotStore == nil {
		return nil
	}
	return c.SnapshotStore.Close()
}
