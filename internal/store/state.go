package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/belajar/internal/progress"
)

// StateRepo persists learner state in the progress and notes tables.
// It implements progress.Adapter.
type StateRepo struct {
	db *sql.DB
}

var _ progress.Adapter = (*StateRepo)(nil)

func (r *StateRepo) Load(ctx context.Context) (progress.State, error) {
	s := progress.NewState()
	b := builder()

	query, args := b.Select("module_id", "percent").From(b.Table("progress")).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return s, fmt.Errorf("query progress: %w", err)
	}
	for rows.Next() {
		var (
			id      string
			percent int
		)
		if err := rows.Scan(&id, &percent); err != nil {
			rows.Close()
			return s, fmt.Errorf("scan progress: %w", err)
		}
		s.Progress[id] = percent
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("iterate progress: %w", err)
	}

	query, args = b.Select("module_id", "body").From(b.Table("notes")).Query()
	rows, err = r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return s, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return s, fmt.Errorf("scan notes: %w", err)
		}
		s.Notes[id] = body
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("iterate notes: %w", err)
	}
	return s, nil
}

// Save replaces both tables with s in a single transaction.
func (r *StateRepo) Save(ctx context.Context, s progress.State) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	b := builder()
	for _, table := range []string{"progress", "notes"} {
		query, args := b.Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if len(s.Progress) > 0 {
		ins := b.Insert("progress").Columns("module_id", "percent")
		for id, p := range s.Progress {
			ins = ins.Values(id, min(max(p, 0), 100))
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
	}

	if len(s.Notes) > 0 {
		ins := b.Insert("notes").Columns("module_id", "body")
		for id, n := range s.Notes {
			ins = ins.Values(id, n)
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert notes: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit state: %w", err)
	}
	return nil
}
