package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"seriesrip/internal/services/tvdb"
)

// Store persists fetched episode listings in SQLite so the next disc of a
// box set does not refetch the full catalog.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode    = 5
	busyRetryAttempts = 5
	busyRetryBackoff  = 25 * time.Millisecond
)

const schema = `
CREATE TABLE IF NOT EXISTS listings (
    series_id   INTEGER NOT NULL,
    season_type TEXT    NOT NULL,
    language    TEXT    NOT NULL,
    payload     TEXT    NOT NULL,
    fetched_at  TEXT    NOT NULL,
    PRIMARY KEY (series_id, season_type, language)
)`

// OpenStore initializes or connects to the cache database at path.
func OpenStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog cache path required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
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

// Get returns the cached listing when present and younger than ttl.
func (s *Store) Get(ctx context.Context, seriesID int64, seasonType tvdb.SeasonType, language string, ttl time.Duration) ([]tvdb.Episode, bool, error) {
	var payload, fetchedAt string
	err := retryOnBusy(ctx, func() error {
		row := s.db.QueryRowContext(ctx,
			`SELECT payload, fetched_at FROM listings WHERE series_id = ? AND season_type = ? AND language = ?`,
			seriesID, string(seasonType), language)
		return row.Scan(&payload, &fetchedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached listing: %w", err)
	}

	fetched, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil || time.Since(fetched) > ttl {
		return nil, false, nil
	}

	var episodes []tvdb.Episode
	if err := json.Unmarshal([]byte(payload), &episodes); err != nil {
		return nil, false, fmt.Errorf("decode cached listing: %w", err)
	}
	return episodes, true, nil
}

// Put stores or replaces the listing for the given key.
func (s *Store) Put(ctx context.Context, seriesID int64, seasonType tvdb.SeasonType, language string, episodes []tvdb.Episode) error {
	payload, err := json.Marshal(episodes)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO listings (series_id, season_type, language, payload, fetched_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (series_id, season_type, language) DO UPDATE SET
			     payload = excluded.payload,
			     fetched_at = excluded.fetched_at`,
			seriesID, string(seasonType), language, string(payload), time.Now().UTC().Format(time.RFC3339))
		return err
	})
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil || !isSQLiteBusy(lastErr) {
			return lastErr
		}
		select {
		case <-time.After(busyRetryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
