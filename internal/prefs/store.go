// Package prefs persists per-snap user preferences across daemon restarts,
// currently just the notification-suppression flag set from the CLI.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"snapwatch/internal/config"
)

// Store manages preference persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the preference database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "prefs.db")
	db, err := sql.Open("sqlite", dbPath)
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

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS snap_prefs (
    snap_name  TEXT PRIMARY KEY,
    ignored    INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// SetIgnored records whether notifications for the snap are suppressed.
func (s *Store) SetIgnored(ctx context.Context, snapName string, ignored bool) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO snap_prefs (snap_name, ignored, updated_at)
         VALUES (?, ?, ?)
         ON CONFLICT(snap_name) DO UPDATE SET
             ignored = excluded.ignored,
             updated_at = excluded.updated_at`,
		snapName,
		boolToInt(ignored),
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("set ignored for %s: %w", snapName, err)
	}
	return nil
}

// IgnoredSnaps returns the names of all snaps whose notifications are
// suppressed, sorted by name.
func (s *Store) IgnoredSnaps(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT snap_name FROM snap_prefs WHERE ignored = 1 ORDER BY snap_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("query ignored snaps: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan ignored snap: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ignored snaps: %w", err)
	}
	return names, nil
}

// IsIgnored reports whether notifications for the snap are suppressed.
// Unknown snaps are not suppressed.
func (s *Store) IsIgnored(ctx context.Context, snapName string) (bool, error) {
	var ignored int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT ignored FROM snap_prefs WHERE snap_name = ?`,
		snapName,
	).Scan(&ignored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query ignored for %s: %w", snapName, err)
	}
	return ignored != 0, nil
}

// CheckHealth verifies the database answers queries.
func (s *Store) CheckHealth(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snap_prefs`).Scan(&count); err != nil {
		return fmt.Errorf("prefs database unavailable: %w", err)
	}
	return nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
