package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
	"github.com/zrasti/malleable-go/internal/domain/snapshots"
)

func newTestPreviewService(t *testing.T, store *fakeStore) *PreviewService {
	t.Helper()
	return NewPreviewService(store, newTestLogger(t), newTestTracker(), "test-secret", time.Hour)
}

func TestEnterMintsTokenForStoredSnapshot(t *testing.T) {
	store := newFakeStore()
	svc := newTestPreviewService(t, store)
	ctx := context.Background()

	snapshotID, err := store.Put(ctx, page.EditSet{{ID: "title", Text: "x"}})
	require.NoError(t, err)

	result := svc.Enter(ctx, snapshotID)
	require.True(t, result.Success)
	require.NotEmpty(t, result.Token)

	bound, ok := svc.Current(result.Token)
	require.True(t, ok)
	assert.Equal(t, snapshotID, bound)
}

func TestEnterMissingSnapshot(t *testing.T) {
	store := newFakeStore()
	svc := newTestPreviewService(t, store)

	result := svc.Enter(context.Background(), "no-such-snapshot")
	require.False(t, result.Success)
	assert.False(t, result.Retryable)
	assert.Equal(t, snapshots.ErrNotFoundOrForbidden.Error(), result.Error)
	assert.Empty(t, result.Token)
}

func TestEnterTransientFetchFailure(t *testing.T) {
	store := newFakeStore()
	store.getErr = &snapshots.ReadError{Err: assert.AnError}
	svc := newTestPreviewService(t, store)

	result := svc.Enter(context.Background(), "snap-1")
	require.False(t, result.Success)
	assert.True(t, result.Retryable)
	assert.Contains(t, result.Error, "refresh")
}

func TestCurrentWithNoToken(t *testing.T) {
	svc := newTestPreviewService(t, newFakeStore())

	_, ok := svc.Current("")
	assert.False(t, ok)
}

func TestCurrentWithForeignToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestPreviewService(t, store)
	other := NewPreviewService(store, newTestLogger(t), newTestTracker(), "other-secret", time.Hour)
	ctx := context.Background()

	snapshotID, err := store.Put(ctx, page.EditSet{{ID: "title", Text: "x"}})
	require.NoError(t, err)

	result := other.Enter(ctx, snapshotID)
	require.True(t, result.Success)

	_, ok := svc.Current(result.Token)
	assert.False(t, ok, "tokens signed with another secret carry no session")
}
