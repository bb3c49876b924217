package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
	"github.com/zrasti/malleable-go/internal/domain/snapshots"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
)

const (
	waitTimeout  = 2 * time.Second
	pollInterval = 5 * time.Millisecond
)

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)
	return logger
}

func newTestTracker() *performance.Tracker {
	return performance.NewTracker(nil)
}

// fakeStore is an in-memory snapshot store with scriptable failures and a
// gate to hold writes open while another submission races in.
type fakeStore struct {
	mu       sync.Mutex
	objects  map[string]page.EditSet
	nextID   int
	putCalls int

	putErr error
	getErr error

	// When set, Put blocks until the channel is closed.
	putGate chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string]page.EditSet)}
}

func (f *fakeStore) Put(ctx context.Context, edits page.EditSet) (string, error) {
	f.mu.Lock()
	f.putCalls++
	gate := f.putGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if f.putErr != nil {
		return "", f.putErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("snap-%d", f.nextID)
	f.objects[id] = edits
	return id, nil
}

func (f *fakeStore) Get(ctx context.Context, snapshotID string) (page.EditSet, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	edits, ok := f.objects[snapshotID]
	if !ok {
		return nil, snapshots.ErrNotFoundOrForbidden
	}
	return edits, nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putCalls
}
