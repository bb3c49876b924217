// Package snapshots defines the snapshot store contract and its failure
// taxonomy. A snapshot is a persisted edit-set addressed by an opaque,
// collision-resistant identifier; objects are write-once-read-many.
package snapshots

import (
	"context"
	"errors"
	"fmt"

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
)

// ErrNotFoundOrForbidden reports that a snapshot is absent or that access to
// it was denied. The two cases are deliberately indistinguishable so a caller
// cannot probe for the existence of objects it may not read.
var ErrNotFoundOrForbidden = errors.New("snapshot does not exist or access is denied")

// WriteError reports a transport or permission failure while persisting a
// snapshot. Not retried automatically; the user re-triggers the share action.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to persist snapshot: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a transient transport failure while fetching a snapshot.
// The user-facing remedy is a refresh, not an automatic retry.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to fetch snapshot: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Store persists edit-sets under generated identifiers. Put and Get are
// independent, non-transactional operations against a shared multi-writer
// namespace; no locking is needed because identifiers are never reused and
// objects are never mutated after the initial write.
//
// Get classifies every failure into exactly one of: ErrNotFoundOrForbidden,
// or *ReadError, regardless of how the underlying transport signals them.
// Put fails with *WriteError. For any edit-set E, Get(Put(E)) returns an
// edit-set equal to E, same ids, texts, and order.
type Store interface {
	Put(ctx context.Context, edits page.EditSet) (string, error)
	Get(ctx context.Context, snapshotID string) (page.EditSet, error)
	Close() error
}
