// Package blob provides the durable snapshot store backends. Each backend
// persists serialized edit-sets as write-once objects keyed by
// "{snapshotId}.json" inside a single fixed, access-restricted bucket, and
// maps every backend failure onto the snapshot store's three error kinds.
package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
	"github.com/zrasti/malleable-go/internal/domain/snapshots"
	"github.com/zrasti/malleable-go/internal/infrastructure/security"
)

// BoltStore implements the snapshot store on a BoltDB file. The store holds
// a capability to exactly one bucket; reads outside that grant are
// indistinguishable from reads of absent objects.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
}

// NewBoltStore opens (or creates) the BoltDB file at dbPath and ensures the
// snapshot bucket exists.
func NewBoltStore(dbPath, bucket string) (*BoltStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	store := &BoltStore{db: db, bucket: []byte(bucket)}

	if err := store.initBucket(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return store, nil
}

func (s *BoltStore) initBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(s.bucket); err != nil {
			return fmt.Errorf("failed to create snapshot bucket: %w", err)
		}
		return nil
	})
}

// Put serializes the edit-set and writes it under a freshly generated
// snapshot id. Objects are never overwritten; every submit yields a new id.
func (s *BoltStore) Put(ctx context.Context, edits page.EditSet) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &snapshots.WriteError{Err: err}
	}

	body, err := edits.Marshal()
	if err != nil {
		return "", &snapshots.WriteError{Err: err}
	}

	snapshotID := security.GenerateSnapshotID()
	key := objectKey(snapshotID)

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("snapshot bucket missing")
		}
		return bucket.Put([]byte(key), body)
	})
	if err != nil {
		return "", &snapshots.WriteError{Err: err}
	}

	return snapshotID, nil
}

// Get fetches and deserializes the edit-set stored under snapshotID. An
// absent object and a bucket the store has no grant for produce the same
// error kind.
func (s *BoltStore) Get(ctx context.Context, snapshotID string) (page.EditSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, &snapshots.ReadError{Err: err}
	}

	var body []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return snapshots.ErrNotFoundOrForbidden
		}
		value := bucket.Get([]byte(objectKey(snapshotID)))
		if value == nil {
			return snapshots.ErrNotFoundOrForbidden
		}
		body = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		if err == snapshots.ErrNotFoundOrForbidden {
			return nil, err
		}
		return nil, &snapshots.ReadError{Err: err}
	}

	edits, err := page.UnmarshalEditSet(body)
	if err != nil {
		return nil, &snapshots.ReadError{Err: err}
	}
	return edits, nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func objectKey(snapshotID string) string {
	return snapshotID + ".json"
}
