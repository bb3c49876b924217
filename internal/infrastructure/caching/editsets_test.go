package caching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
)

func TestEditSetStoreGetSet(t *testing.T) {
	store := NewEditSetStore(time.Minute)

	edits := page.EditSet{{ID: "title", Text: "Hello"}}
	store.Set("snap-1", edits)

	got, ok := store.Get("snap-1")
	require.True(t, ok)
	assert.Equal(t, edits, got)

	_, ok = store.Get("snap-2")
	assert.False(t, ok)
}

func TestEditSetStoreExpiry(t *testing.T) {
	store := NewEditSetStore(time.Millisecond)

	store.Set("snap-1", page.EditSet{{ID: "title", Text: "Hello"}})
	time.Sleep(5 * time.Millisecond)

	_, ok := store.Get("snap-1")
	assert.False(t, ok)
}

func TestEditSetStorePurgeExpired(t *testing.T) {
	store := NewEditSetStore(time.Millisecond)

	store.Set("snap-1", nil)
	store.Set("snap-2", nil)
	time.Sleep(5 * time.Millisecond)
	store.Set("snap-3", nil)

	purged := store.PurgeExpired()
	assert.Equal(t, 2, purged)
	assert.Equal(t, 1, store.Len())
}
