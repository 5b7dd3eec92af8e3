// Package storage provides SQLite-based persistence for the high score and
// the run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies; the schema is managed by embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNoStore is returned by methods called on a nil Store.
var ErrNoStore = errors.New("storage: no database")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished run in the history.
type RunEntry struct {
	ID        int64
	Score     int
	PlayTime  time.Duration
	CreatedAt time.Time
}

// Summary aggregates the run history.
type Summary struct {
	Runs       int
	BestRun    int
	AvgScore   float64
	PlayTime   time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

// migrate applies all pending schema migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// HighScore returns the value stored under key, or 0 if none is stored.
func (s *Store) HighScore(key string) (int, error) {
	if s == nil {
		return 0, ErrNoStore
	}
	var v int
	err := s.db.QueryRow("SELECT value FROM high_scores WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return v, nil
}

// SetHighScore stores v under key, replacing any previous value.
func (s *Store) SetHighScore(key string, v int) error {
	if s == nil {
		return ErrNoStore
	}
	_, err := s.db.Exec(
		`INSERT INTO high_scores (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, v,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(score int, playTime time.Duration) (int64, error) {
	if s == nil {
		return 0, ErrNoStore
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (score, play_ms) VALUES (?, ?)",
		score, playTime.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the best runs, highest score first.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if s == nil {
		return nil, ErrNoStore
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, score, play_ms, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var playMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Score, &playMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.PlayTime = time.Duration(playMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Summary aggregates the whole run history.
func (s *Store) Summary() (*Summary, error) {
	if s == nil {
		return nil, ErrNoStore
	}
	var sum Summary
	var playMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(play_ms), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&sum.Runs, &sum.BestRun, &sum.AvgScore, &playMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	sum.PlayTime = time.Duration(playMS) * time.Millisecond
	sum.LastPlayed = parseTime(lastPlayed)
	return &sum, nil
}

// ClearRuns deletes the run history. The high score is kept.
func (s *Store) ClearRuns() error {
	if s == nil {
		return ErrNoStore
	}
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
