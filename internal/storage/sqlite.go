// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sqlx.DB
}

// MatchRecord is one finished or abandoned match.
type MatchRecord struct {
	ID         int64  `db:"id"`
	MatchID    string `db:"match_id"` // UUID assigned on save
	Scenario   string `db:"scenario"`
	Seed       int64  `db:"seed"`
	Rock       int    `db:"rock"` // Initial population
	Paper      int    `db:"paper"`
	Scissors   int    `db:"scissors"`
	Winner     string `db:"winner"` // "none" or empty if the match never finished
	Ticks      int64  `db:"ticks"`
	DurationMs int64  `db:"duration_ms"` // Simulated time
	Source     string `db:"source"`      // "play", "run" or "ssh"
	CreatedMs  int64  `db:"created_at"`  // Unix milliseconds
}

// CreatedAt returns the save time.
func (r MatchRecord) CreatedAt() time.Time {
	return time.UnixMilli(r.CreatedMs)
}

// Duration returns the simulated match length.
func (r MatchRecord) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// Tally counts matches by outcome.
type Tally struct {
	Rock       int
	Paper      int
	Scissors   int
	Unfinished int
}

// Total returns the number of matches counted.
func (t Tally) Total() int {
	return t.Rock + t.Paper + t.Scissors + t.Unfinished
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			rock INTEGER NOT NULL DEFAULT 0,
			paper INTEGER NOT NULL DEFAULT 0,
			scissors INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_scenario ON matches(scenario);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
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

// SaveMatch records a match. A MatchID and creation time are assigned when
// missing. Returns the record as stored.
func (s *Store) SaveMatch(rec MatchRecord) (MatchRecord, error) {
	if rec.MatchID == "" {
		rec.MatchID = uuid.NewString()
	}
	if rec.CreatedMs == 0 {
		rec.CreatedMs = time.Now().UnixMilli()
	}

	res, err := s.db.NamedExec(
		`INSERT INTO matches
		 (match_id, scenario, seed, rock, paper, scissors, winner, ticks, duration_ms, source, created_at)
		 VALUES (:match_id, :scenario, :seed, :rock, :paper, :scissors, :winner, :ticks, :duration_ms, :source, :created_at)`,
		rec,
	)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	rec.ID = id

	return rec, nil
}

const matchColumns = `id, match_id, scenario, seed, rock, paper, scissors, winner, ticks, duration_ms, source, created_at`

// MatchByID retrieves a match by its match ID.
// Returns nil without error if no such match exists.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	var rec MatchRecord
	err := s.db.Get(&rec, `SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &rec, nil
}

// RecentMatches retrieves the most recent matches, newest first.
// An empty scenario matches all scenarios.
func (s *Store) RecentMatches(scenario string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []MatchRecord
	err := s.db.Select(&records,
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR scenario = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scenario, scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return records, nil
}

// WinTally counts matches by winner.
// An empty scenario counts all scenarios.
func (s *Store) WinTally(scenario string) (Tally, error) {
	var rows []struct {
		Winner string `db:"winner"`
		Count  int    `db:"n"`
	}
	err := s.db.Select(&rows,
		`SELECT winner, COUNT(*) AS n
		 FROM matches
		 WHERE ? = '' OR scenario = ?
		 GROUP BY winner`,
		scenario, scenario,
	)
	if err != nil {
		return Tally{}, fmt.Errorf("storage: cannot tally matches: %w", err)
	}

	var t Tally
	for _, r := range rows {
		switch r.Winner {
		case "rock":
			t.Rock += r.Count
		case "paper":
			t.Paper += r.Count
		case "scissors":
			t.Scissors += r.Count
		default:
			t.Unfinished += r.Count
		}
	}
	return t, nil
}

// ClearMatches deletes the history for a scenario, or all history when
// scenario is empty. Returns the number of rows removed.
func (s *Store) ClearMatches(scenario string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM matches WHERE ? = '' OR scenario = ?`, scenario, scenario)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared rows: %w", err)
	}
	return n, nil
}
