package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/belajar/internal/config"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SchemaVersion is recorded in the meta table by migrate.
const SchemaVersion = 1

// Store is the SQLite database holding learner state, the event log and
// snapshots.
type Store struct {
	db  *sql.DB
	seq *sequencer
}

// Open opens or creates the database at dsn and brings its schema up to
// date.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection, so the pragmas hold for every statement.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	for _, step := range []struct {
		name string
		run  func(context.Context, *sql.DB) error
	}{
		{"apply pragmas", applyPragmas},
		{"migrate", migrate},
	} {
		if err := step.run(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return &Store{db: db, seq: &sequencer{db: db}}, nil
}

// OpenPath ensures the parent directory of path exists and opens it.
func OpenPath(path string) (*Store, error) {
	if err := config.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return Open(path)
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// StateRepo is the learner state adapter for the "sqlite" store.
func (s *Store) StateRepo() *StateRepo {
	return &StateRepo{db: s.db}
}

func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

func (s *Store) SnapshotRepo() SnapshotRepo {
	return &snapshotRepo{db: s.db}
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

var pragmas = []string{
	"journal_mode = WAL",
	"busy_timeout = 5000",
	"foreign_keys = ON",
	"synchronous = NORMAL",
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, "PRAGMA "+p); err != nil {
			return fmt.Errorf("pragma %s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
	`INSERT OR IGNORE INTO meta (key, value) VALUES ('event_sequence', 0)`,
	`CREATE TABLE IF NOT EXISTS progress (
		module_id TEXT PRIMARY KEY,
		percent INTEGER NOT NULL CHECK (percent BETWEEN 0 AND 100)
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		module_id TEXT PRIMARY KEY,
		body TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		module_id TEXT NOT NULL,
		correct INTEGER NOT NULL,
		total INTEGER NOT NULL,
		percent INTEGER NOT NULL,
		progress_after INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_attempts_module_id ON quiz_attempts (module_id)`,
	`CREATE TABLE IF NOT EXISTS llm_requests (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms INTEGER NOT NULL,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		reason TEXT NOT NULL,
		data TEXT NOT NULL
	)`,
}

// migrate creates missing tables and records SchemaVersion. A database
// written by a newer build is refused.
func migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	case version > SchemaVersion:
		return fmt.Errorf("database schema v%d is newer than this build (v%d)", version, SchemaVersion)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('schema_version', ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, SchemaVersion); err != nil {
		return err
	}
	return tx.Commit()
}
