package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sequencer numbers events across both event tables so quiz attempts and
// LLM requests can be ordered against each other. The counter lives in
// the meta table.
type sequencer struct {
	mu sync.Mutex
	db *sql.DB
}

// Next returns the next event number, starting at 1.
func (s *sequencer) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE meta SET value = value + 1 WHERE key = 'event_sequence' RETURNING value`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next event sequence: %w", err)
	}
	return n, nil
}

// eventRepo implements EventRepo with ent's SQL builder over *sql.DB.
type eventRepo struct {
	db  *sql.DB
	seq *sequencer
}

// applyOpts adds the common filters to an event query. The table must
// have module_id only when opts.ModuleID is set.
func applyOpts(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	var preds []*entsql.Predicate
	if opts.ModuleID != "" {
		preds = append(preds, entsql.EQ("module_id", opts.ModuleID))
	}
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
