// Package deps carries the services shared by every screen.
package deps

import (
	"context"
	"os"
	"time"

	"github.com/abhisek/belajar/internal/assist"
	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/logger"
	"github.com/abhisek/belajar/internal/progress"
	"github.com/abhisek/belajar/internal/quiz"
	"github.com/abhisek/belajar/internal/store"
)

// Deps is handed to screen constructors. Events and Assist may be nil.
type Deps struct {
	Catalog *catalog.Catalog
	Tracker *progress.Tracker
	Events  store.EventRepo
	Assist  *assist.Service
	Log     *logger.Logger

	// CatalogPath is the catalog file edits are written back to. Empty or
	// a directory keeps edits in memory for the session.
	CatalogPath string

	// Seed drives flashcard shuffling.
	Seed uint64

	// Teacher enables the editor.
	Teacher bool
}

// Logger returns the configured logger or a no-op one.
func (d *Deps) Logger() *logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}

// RecordAttempt applies a graded quiz to progress and appends it to the
// event log. It returns the module's new progress.
func (d *Deps) RecordAttempt(ctx context.Context, moduleID string, r quiz.Result) int {
	next := d.Tracker.RecordResult(ctx, moduleID, r)
	if d.Events == nil {
		return next
	}
	err := d.Events.AppendAttempt(ctx, store.AttemptData{
		ModuleID:      moduleID,
		Correct:       r.Correct,
		Total:         r.Total,
		Percent:       r.Percent,
		ProgressAfter: next,
	})
	if err != nil {
		d.Logger().Warn("append attempt failed", "module", moduleID, "error", err)
	}
	return next
}

// PersistCatalog writes the catalog back to CatalogPath when it names a
// file. It reports whether anything was written.
func (d *Deps) PersistCatalog() (bool, error) {
	if d.CatalogPath == "" {
		return false, nil
	}
	if info, err := os.Stat(d.CatalogPath); err == nil && info.IsDir() {
		return false, nil
	}
	if err := catalog.Write(d.CatalogPath, d.Catalog.All()); err != nil {
		d.Logger().Error("write catalog failed", "path", d.CatalogPath, "error", err)
		return false, err
	}
	d.Logger().Info("catalog written", "path", d.CatalogPath, "modules", d.Catalog.Len())
	return true, nil
}

// AssistTimeout bounds one content assist request.
const AssistTimeout = 90 * time.Second
