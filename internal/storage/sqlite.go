// Package storage provides SQLite-based persistence for solve and verify
// run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded solver or verifier invocation on a level.
type Run struct {
	ID         int64
	LevelFile  string
	Difficulty string
	Op         string // "solve" or "verify"
	Outcome    string // "passed", "skipped", or a failure classification
	Moves      int
	Duration   time.Duration
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_file TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			op TEXT NOT NULL,
			outcome TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level_file);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun appends one run to the history. Returns the inserted ID.
func (s *Store) RecordRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (level_file, difficulty, op, outcome, moves, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.LevelFile, r.Difficulty, r.Op, r.Outcome, r.Moves, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first. When levelFile
// is non-empty only that level's runs are returned.
func (s *Store) RecentRuns(levelFile string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, level_file, difficulty, op, outcome, moves, duration_ms, created_at
	          FROM runs`
	args := []any{}
	if levelFile != "" {
		query += ` WHERE level_file = ?`
		args = append(args, levelFile)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelFile, &r.Difficulty, &r.Op, &r.Outcome, &r.Moves, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// LevelStats contains aggregated run statistics for one level.
type LevelStats struct {
	LevelFile   string
	RunsCount   int
	PassCount   int
	BestMoves   int // shortest passing playback, 0 when never passed
	LastOutcome string
	LastRun     time.Time
}

// GetLevelStats aggregates the run history for a specific level file.
func (s *Store) GetLevelStats(levelFile string) (*LevelStats, error) {
	stats := &LevelStats{LevelFile: levelFile}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'passed' THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'passed' THEN moves END), 0)
		 FROM runs WHERE level_file = ?`,
		levelFile,
	).Scan(&stats.RunsCount, &stats.PassCount, &stats.BestMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var createdAt any
	err = s.db.QueryRow(
		`SELECT outcome, created_at FROM runs WHERE level_file = ? ORDER BY id DESC LIMIT 1`,
		levelFile,
	).Scan(&stats.LastOutcome, &createdAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTimestamp(createdAt)
	}
	return stats, nil
}

// parseTimestamp handles the driver returning DATETIME columns as either
// time.Time or string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
