package drafts

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"pwtune/internal/catalog"
	"pwtune/internal/config"
)

// lockRetryDelay is how often a blocked writer re-polls the lock file.
const lockRetryDelay = 50 * time.Millisecond

// Draft is one persisted staged edit.
type Draft struct {
	Target     catalog.Target
	Key        string
	Value      catalog.Value
	SnapshotID string
	UpdatedAt  time.Time
}

// Store manages draft persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open connects to the drafts database named by the configuration.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.Staging.DraftsPath)
}

// OpenPath initializes or connects to the drafts database at path.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create drafts directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: flock.New(path + ".lock")}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// List returns the drafts stored for target ordered by key. A target with a
// subsection only sees keys under that subsection.
func (s *Store) List(ctx context.Context, target catalog.Target) ([]Draft, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, kind, value_json, snapshot_id, updated_at
         FROM drafts WHERE file = ? AND section = ? ORDER BY key`,
		target.File, target.Section,
	)
	if err != nil {
		return nil, fmt.Errorf("query drafts: %w", err)
	}
	defer rows.Close()

	var out []Draft
	for rows.Next() {
		var (
			key, kind, valueJSON, snapshotID, updated string
		)
		if err := rows.Scan(&key, &kind, &valueJSON, &snapshotID, &updated); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		if !target.Contains(key) {
			continue
		}
		value, err := decodeValue(kind, valueJSON)
		if err != nil {
			return nil, fmt.Errorf("decode draft %s: %w", key, err)
		}
		ts, _ := time.Parse(time.RFC3339Nano, updated)
		out = append(out, Draft{
			Target:     target,
			Key:        key,
			Value:      value,
			SnapshotID: snapshotID,
			UpdatedAt:  ts,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drafts: %w", err)
	}
	return out, nil
}

// Load returns the drafts for target as a fresh staged edit catalog.
func (s *Store) Load(ctx context.Context, target catalog.Target) (*catalog.StagedEdits, error) {
	list, err := s.List(ctx, target)
	if err != nil {
		return nil, err
	}
	staged := catalog.NewStagedEdits()
	for _, d := range list {
		if err := staged.Set(d.Key, d.Value); err != nil {
			return nil, fmt.Errorf("restore draft %s: %w", d.Key, err)
		}
	}
	return staged, nil
}

// Save upserts edits for target in one transaction while holding the writer lock.
func (s *Store) Save(ctx context.Context, target catalog.Target, snapshotID string, edits []catalog.Edit) error {
	if len(edits) == 0 {
		return nil
	}
	return s.withLock(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin save tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		now := time.Now().UTC().Format(time.RFC3339Nano)
		for _, edit := range edits {
			data, err := edit.Value.MarshalJSON()
			if err != nil {
				return fmt.Errorf("encode draft %s: %w", edit.Key, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO drafts (file, section, key, kind, value_json, snapshot_id, updated_at)
                 VALUES (?, ?, ?, ?, ?, ?, ?)
                 ON CONFLICT(file, section, key) DO UPDATE SET
                     kind = excluded.kind,
                     value_json = excluded.value_json,
                     snapshot_id = excluded.snapshot_id,
                     updated_at = excluded.updated_at`,
				target.File, target.Section, edit.Key,
				edit.Value.Kind().String(), string(data), snapshotID, now,
			); err != nil {
				return fmt.Errorf("save draft %s: %w", edit.Key, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit drafts: %w", err)
		}
		return nil
	})
}

// Clear removes the drafts for target and returns how many were deleted.
func (s *Store) Clear(ctx context.Context, target catalog.Target) (int64, error) {
	var removed int64
	err := s.withLock(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM drafts
             WHERE file = ? AND section = ?
               AND (? = '' OR substr(key, 1, length(?) + 1) = ? || '.')`,
			target.File, target.Section,
			target.Subsection, target.Subsection, target.Subsection,
		)
		if err != nil {
			return fmt.Errorf("clear drafts: %w", err)
		}
		removed, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	return removed, err
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire drafts lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire drafts lock: %s is held by another process", s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func decodeValue(kind, valueJSON string) (catalog.Value, error) {
	want, err := catalog.ParseKind(kind)
	if err != nil {
		return catalog.Value{}, err
	}
	var value catalog.Value
	if err := value.UnmarshalJSON([]byte(valueJSON)); err != nil {
		return catalog.Value{}, err
	}
	if value.Kind() != want {
		return catalog.Value{}, fmt.Errorf("stored kind %s does not match value %s", kind, valueJSON)
	}
	return value, nil
}
