package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert("quiz_attempts").
		Columns("id", "sequence", "created_at", "module_id", "correct", "total", "percent", "progress_after").
		Values(uuid.NewString(), seqNum, time.Now().UnixMilli(), data.ModuleID,
			data.Correct, data.Total, data.Percent, data.ProgressAfter).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	b := builder()
	sel := b.Select("id", "sequence", "created_at", "module_id", "correct", "total", "percent", "progress_after").
		From(b.Table("quiz_attempts"))
	query, args := applyOpts(sel, QueryOpts{
		Limit:    opts.Limit,
		ModuleID: opts.ModuleID,
		From:     opts.From,
		To:       opts.To,
	}).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a  Attempt
			ms int64
		)
		if err := rows.Scan(&a.ID, &a.Sequence, &ms, &a.ModuleID,
			&a.Correct, &a.Total, &a.Percent, &a.ProgressAfter); err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		a.Timestamp = fromMillis(ms)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz attempts: %w", err)
	}
	return out, nil
}
