package store

import (
	"context"
	"time"

	"github.com/abhisek/belajar/internal/progress"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	ModuleID string    // only events for this module
	Purpose  string    // only LLM events with this purpose
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
}

// AttemptData captures a graded quiz attempt.
type AttemptData struct {
	ModuleID      string
	Correct       int
	Total         int
	Percent       int
	ProgressAfter int
}

// Attempt is a stored quiz attempt.
type Attempt struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	AttemptData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendAttempt records a graded quiz.
	AppendAttempt(ctx context.Context, data AttemptData) error

	// QueryAttempts returns attempts newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}

// Snapshot is a point-in-time copy of the learner state, taken before
// destructive operations such as reset or import.
type Snapshot struct {
	ID        int
	Timestamp time.Time
	Reason    string
	Data      progress.State
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// List returns snapshots newest first.
	List(ctx context.Context, limit int) ([]Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}
