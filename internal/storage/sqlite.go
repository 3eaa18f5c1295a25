// Package storage provides SQLite-based persistence for game saves and the
// history of script faults.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Fault is one recorded script fault.
type Fault struct {
	ID        int64
	GameID    string
	Message   string
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS saves (
			game_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (game_id, key)
		);

		CREATE TABLE IF NOT EXISTS faults (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_faults_game_id ON faults(game_id);
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

// Set stores value under key for the given game, replacing any old value.
func (s *Store) Set(gameID, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (game_id, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		gameID, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key. The bool is false when the key
// does not exist.
func (s *Store) Get(gameID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM saves WHERE game_id = ? AND key = ?",
		gameID, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot load %q: %w", key, err)
	}
	return value, true, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(gameID, key string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE game_id = ? AND key = ?", gameID, key)
	if err != nil {
		return fmt.Errorf("storage: cannot delete %q: %w", key, err)
	}
	return nil
}

// Keys returns the game's keys in sorted order.
func (s *Store) Keys(gameID string) ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM saves WHERE game_id = ? ORDER BY key", gameID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return keys, nil
}

// RecordFault appends a fault to the history.
func (s *Store) RecordFault(gameID, message string) error {
	_, err := s.db.Exec(
		"INSERT INTO faults (game_id, message) VALUES (?, ?)",
		gameID, message,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record fault: %w", err)
	}
	return nil
}

// RecentFaults returns the newest faults first. An empty gameID returns
// faults of every game.
func (s *Store) RecentFaults(gameID string, limit int) ([]Fault, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, message, created_at
		 FROM faults
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query faults: %w", err)
	}
	defer rows.Close()

	var faults []Fault
	for rows.Next() {
		var f Fault
		var createdAt any
		if err := rows.Scan(&f.ID, &f.GameID, &f.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		f.CreatedAt = parseTime(createdAt)
		faults = append(faults, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return faults, nil
}

// parseTime handles both time.Time and string datetimes.
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
