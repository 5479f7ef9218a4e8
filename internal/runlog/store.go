// Package runlog appends one history row per tool run to a local
// SQLite database. Logging failures are never fatal for the run that
// produced them; callers downgrade them to warnings.
package runlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS run_log (
	run_id       TEXT PRIMARY KEY,
	tool         TEXT NOT NULL,
	inputs_json  TEXT,
	result_json  TEXT,
	created_at   TEXT NOT NULL
);
`

// #endregion schema

// #region store

// Store manages the run-history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a run-history database and runs
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate run log: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion store

// #region entries

// Entry is one recorded run.
type Entry struct {
	RunID     string
	Tool      string
	Inputs    []string
	Result    any
	CreatedAt time.Time
}

// Append records a run and returns its id. A zero RunID gets a fresh
// uuid; a zero CreatedAt gets the current UTC time.
func (s *Store) Append(e Entry) (string, error) {
	if e.RunID == "" {
		e.RunID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	inputsJSON, err := json.Marshal(e.Inputs)
	if err != nil {
		return "", fmt.Errorf("marshal inputs: %w", err)
	}
	resultJSON, err := json.Marshal(e.Result)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO run_log (run_id, tool, inputs_json, result_json, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.RunID,
		e.Tool,
		string(inputsJSON),
		string(resultJSON),
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("append run log: %w", err)
	}
	return e.RunID, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, tool, inputs_json, created_at FROM run_log
		 ORDER BY created_at DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query run log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var inputsJSON, createdAt string
		if err := rows.Scan(&e.RunID, &e.Tool, &inputsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run log: %w", err)
		}
		if err := json.Unmarshal([]byte(inputsJSON), &e.Inputs); err != nil {
			return nil, fmt.Errorf("decode inputs: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion entries
