package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
	"github.com/zrasti/malleable-go/internal/domain/snapshots"
	"github.com/zrasti/malleable-go/internal/infrastructure/security"
)

// SQLiteStore implements the snapshot store on a SQLite database, one row
// per object. Same contract as BoltStore: write-once objects in a single
// fixed bucket, three error kinds.
type SQLiteStore struct {
	db     *sql.DB
	bucket string
}

// NewSQLiteStore opens (or creates) the SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful for testing).
func NewSQLiteStore(ctx context.Context, dbPath, bucket string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite with WAL supports multiple readers but a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS objects (
		bucket TEXT NOT NULL,
		key TEXT NOT NULL,
		body BLOB NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		PRIMARY KEY (bucket, key)
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create objects table: %w", err)
	}

	return &SQLiteStore{db: db, bucket: bucket}, nil
}

// Put serializes the edit-set and inserts it under a freshly generated
// snapshot id.
func (s *SQLiteStore) Put(ctx context.Context, edits page.EditSet) (string, error) {
	body, err := edits.Marshal()
	if err != nil {
		return "", &snapshots.WriteError{Err: err}
	}

	snapshotID := security.GenerateSnapshotID()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO objects (bucket, key, body) VALUES (?, ?, ?)`,
		s.bucket, objectKey(snapshotID), body,
	)
	if err != nil {
		return "", &snapshots.WriteError{Err: err}
	}

	return snapshotID, nil
}

// Get fetches and deserializes the edit-set stored under snapshotID.
func (s *SQLiteStore) Get(ctx context.Context, snapshotID string) (page.EditSet, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM objects WHERE bucket = ? AND key = ?`,
		s.bucket, objectKey(snapshotID),
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, snapshots.ErrNotFoundOrForbidden
		}
		return nil, &snapshots.ReadError{Err: err}
	}

	edits, err := page.UnmarshalEditSet(body)
	if err != nil {
		return nil, &snapshots.ReadError{Err: err}
	}
	return edits, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
