package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
	"github.com/zrasti/malleable-go/internal/domain/snapshots"
	"github.com/zrasti/malleable-go/internal/infrastructure/caching"
)

func newTestPageService(t *testing.T, store *fakeStore) *PageService {
	t.Helper()

	tpl := &page.Template{
		Title: "Test Page",
		Regions: []page.TemplateRegion{
			{ID: "title", Tag: "h1", DefaultText: "Hello"},
			{ID: "intro", Tag: "p", DefaultText: "Welcome"},
		},
	}
	return NewPageService(store, caching.NewEditSetStore(time.Minute), newTestLogger(t), newTestTracker(), tpl)
}

func TestRenderDefault(t *testing.T) {
	svc := newTestPageService(t, newFakeStore())

	data := svc.RenderDefault(false)
	require.Len(t, data.Regions, 2)
	assert.Equal(t, "Hello", data.Regions[0].Text)
	assert.False(t, data.Previewing)
	assert.False(t, data.Editable)
	assert.False(t, data.Failed)

	editable := svc.RenderDefault(true)
	assert.True(t, editable.Editable)
}

func TestRenderSnapshotOverlay(t *testing.T) {
	store := newFakeStore()
	svc := newTestPageService(t, store)
	ctx := context.Background()

	snapshotID, err := store.Put(ctx, page.EditSet{{ID: "title", Text: "Edited"}})
	require.NoError(t, err)

	data := svc.RenderSnapshot(ctx, snapshotID)
	require.False(t, data.Failed)
	assert.True(t, data.Previewing)
	assert.Equal(t, snapshotID, data.SnapshotID)
	assert.Equal(t, "Edited", data.Regions[0].Text)
	assert.Equal(t, "Welcome", data.Regions[1].Text)
}

func TestRenderSnapshotMissing(t *testing.T) {
	svc := newTestPageService(t, newFakeStore())

	data := svc.RenderSnapshot(context.Background(), "no-such-snapshot")
	require.True(t, data.Failed)
	assert.False(t, data.Retryable)
	assert.Equal(t, snapshots.ErrNotFoundOrForbidden.Error(), data.FailureError)
	assert.Empty(t, data.Regions, "a failed preview never falls back to defaults")
}

func TestRenderSnapshotTransientFailure(t *testing.T) {
	store := newFakeStore()
	store.getErr = &snapshots.ReadError{Err: assert.AnError}
	svc := newTestPageService(t, store)

	data := svc.RenderSnapshot(context.Background(), "snap-1")
	require.True(t, data.Failed)
	assert.True(t, data.Retryable)
}

func TestRenderSnapshotUsesCache(t *testing.T) {
	store := newFakeStore()
	svc := newTestPageService(t, store)
	ctx := context.Background()

	snapshotID, err := store.Put(ctx, page.EditSet{{ID: "title", Text: "Edited"}})
	require.NoError(t, err)

	first := svc.RenderSnapshot(ctx, snapshotID)
	require.False(t, first.Failed)

	// Snapshots are immutable, so once cached the store can disappear.
	store.getErr = &snapshots.ReadError{Err: assert.AnError}

	second := svc.RenderSnapshot(ctx, snapshotID)
	require.False(t, second.Failed)
	assert.Equal(t, first.Regions, second.Regions)
}
