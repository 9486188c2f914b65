// Package history records past mkfs.btrfs invocations in a SQLite journal.
//
// The journal is written by the CLI after each format run and read by the
// history subcommand. The formatting library itself never touches it.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Invocation is a single recorded mkfs.btrfs run.
type Invocation struct {
	ID        string
	Target    string
	Args      []string
	ExitCode  int
	Duration  time.Duration
	Timestamp time.Time
}

// Store manages the SQLite journal database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the journal at dbPath and initializes
// the schema. ":memory:" opens an in-memory journal, used by tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts an invocation into the journal. A zero ID and timestamp
// are filled in automatically.
func (s *Store) Record(inv Invocation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Timestamp.IsZero() {
		inv.Timestamp = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO invocations (id, target, args, exit_code, duration_ms, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Target,
		strings.Join(inv.Args, " "),
		inv.ExitCode,
		inv.Duration.Milliseconds(),
		inv.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}
	return nil
}

// List returns the most recent invocations, newest first. limit <= 0 means
// no limit.
func (s *Store) List(limit int) ([]Invocation, error) {
	query := `SELECT id, target, args, exit_code, duration_ms, timestamp
	          FROM invocations ORDER BY timestamp DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invocations: %w", err)
	}
	defer rows.Close()

	var invocations []Invocation
	for rows.Next() {
		var inv Invocation
		var joined string
		var durationMS int64
		if err := rows.Scan(&inv.ID, &inv.Target, &joined, &inv.ExitCode, &durationMS, &inv.Timestamp); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		if joined != "" {
			inv.Args = strings.Fields(joined)
		}
		inv.Duration = time.Duration(durationMS) * time.Millisecond
		invocations = append(invocations, inv)
	}
	return invocations, rows.Err()
}

// Clear removes all recorded invocations.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM invocations`); err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}
	return nil
}
