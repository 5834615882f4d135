// Package cache persists detection results in SQLite, keyed by repository,
// commit and detection options fingerprint. A commit's tree never changes,
// so entries never go stale; Prune only bounds the file size.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ruminaider/presetctl/internal/preset"
	_ "modernc.org/sqlite"
)

// ErrClosed indicates the store was closed.
var ErrClosed = errors.New("cache: closed")

// schemaVersion is stored in PRAGMA user_version. Older caches are dropped.
const schemaVersion = 2

const schema = `
CREATE TABLE IF NOT EXISTS detections (
	repo        TEXT    NOT NULL,
	revision    TEXT    NOT NULL,
	options     TEXT    NOT NULL,
	projects    TEXT    NOT NULL,
	detected_at INTEGER NOT NULL,
	PRIMARY KEY (repo, revision, options)
);
CREATE INDEX IF NOT EXISTS idx_detections_detected_at ON detections(detected_at);
`

// Store is a SQLite-backed detection cache.
type Store struct {
	mu  sync.RWMutex
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the cache database at path. ":memory:" gives a
// private in-memory cache.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("creating cache directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configuring cache: %w", err)
		}
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating cache: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version < schemaVersion {
		if _, err := db.Exec("DROP TABLE IF EXISTS detections"); err != nil {
			return err
		}
	}
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

func (s *Store) conn() (*sql.DB, error) {
	if s == nil {
		return nil, ErrClosed
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	return s.db, nil
}

// Get returns the cached projects for repo at revision, detected with the
// options fingerprint options.
func (s *Store) Get(ctx context.Context, repo, revision, options string) ([]preset.DetectedProject, bool, error) {
	db, err := s.conn()
	if err != nil {
		return nil, false, err
	}
	var raw string
	err = db.QueryRowContext(ctx,
		`SELECT projects FROM detections WHERE repo = ? AND revision = ? AND options = ?`,
		repo, revision, options,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}
	var projects []preset.DetectedProject
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, false, fmt.Errorf("decoding cached projects: %w", err)
	}
	return projects, true, nil
}

// Put stores projects for repo at revision and options, replacing any
// previous entry.
func (s *Store) Put(ctx context.Context, repo, revision, options string, projects []preset.DetectedProject) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []preset.DetectedProject{}
	}
	raw, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encoding projects: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO detections (repo, revision, options, projects, detected_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(repo, revision, options) DO UPDATE SET
			projects = excluded.projects,
			detected_at = excluded.detected_at`,
		repo, revision, options, string(raw), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Prune deletes entries older than maxAge and returns how many were removed.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	cutoff := s.now().Add(-maxAge).Unix()
	res, err := db.ExecContext(ctx, `DELETE FROM detections WHERE detected_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
