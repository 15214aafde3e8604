package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/config"
	"github.com/abhisek/belajar/internal/logger"
	"github.com/abhisek/belajar/internal/progress"
	"github.com/abhisek/belajar/internal/screens/deps"
	"github.com/abhisek/belajar/internal/store"
)

// environment holds what every command needs. events and snapshots are
// nil when the database could not be opened.
type environment struct {
	cfg       config.Config
	log       *logger.Logger
	store     *store.Store
	events    store.EventRepo
	snapshots store.SnapshotRepo
	tracker   *progress.Tracker
	catalog   *catalog.Catalog
	closers   []func() error
}

// openEnv resolves the configuration for cmd and opens everything.
func openEnv(cmd *cobra.Command) (*environment, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return newEnvironment(cmd.Context(), cfg, cmd.ErrOrStderr())
}

func newEnvironment(ctx context.Context, cfg config.Config, stderr io.Writer) (*environment, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := logger.New(cfg.LogMode, cfg.LogPath)
	if err != nil {
		warnf(stderr, "logging disabled: %v", err)
		log = logger.Nop()
	}
	env := &environment{cfg: cfg, log: log}

	env.catalog, err = loadCatalog(cfg.CatalogPath)
	if err != nil {
		env.Close()
		return nil, err
	}

	st, err := store.OpenPath(cfg.DBPath)
	if err != nil {
		log.Warn("open database failed", "path", cfg.DBPath, "error", err)
		warnf(stderr, "database unavailable, history and snapshots are off: %v", err)
	} else {
		env.store = st
		env.events = st.EventRepo()
		env.snapshots = st.SnapshotRepo()
		env.closers = append(env.closers, st.Close)
	}

	adapter, err := env.stateAdapter()
	if err != nil {
		env.Close()
		return nil, err
	}
	env.tracker = progress.NewTracker(ctx, adapter, log)
	log.Debug("environment ready",
		"store", cfg.Store, "db", cfg.DBPath, "catalog", cfg.CatalogPath, "modules", env.catalog.Len())
	return env, nil
}

func (e *environment) stateAdapter() (progress.Adapter, error) {
	switch e.cfg.Store {
	case config.StoreFile:
		return store.NewFileAdapter(e.cfg.StateFile), nil
	case config.StoreRedis:
		ra, err := store.NewRedisAdapter(e.cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, ra.Close)
		return ra, nil
	default:
		if e.store == nil {
			return progress.NewMemoryAdapter(), nil
		}
		return e.store.StateRepo(), nil
	}
}

// Close releases the store and flushes the log.
func (e *environment) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			e.log.Warn("close failed", "error", err)
		}
	}
	e.closers = nil
	e.log.Sync()
}

// deps builds the screen dependencies. Assist is left for the caller.
func (e *environment) deps() *deps.Deps {
	return &deps.Deps{
		Catalog:     e.catalog,
		Tracker:     e.tracker,
		Events:      e.events,
		Log:         e.log,
		CatalogPath: e.cfg.CatalogPath,
		Seed:        e.cfg.ShuffleSeed(),
		Teacher:     e.cfg.Teacher,
	}
}

func (e *environment) requireEvents() error {
	if e.events == nil {
		return fmt.Errorf("database %s is unavailable", e.cfg.DBPath)
	}
	return nil
}

// snapshot saves the current state before a destructive change.
func (e *environment) snapshot(ctx context.Context, reason string) error {
	if e.snapshots == nil {
		return fmt.Errorf("database %s is unavailable, cannot take a snapshot", e.cfg.DBPath)
	}
	snap := &store.Snapshot{Reason: reason, Data: e.tracker.Snapshot()}
	if err := e.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := e.snapshots.Prune(ctx, keepSnapshots); err != nil {
		e.log.Warn("prune snapshots", "error", err)
	}
	e.log.Info("snapshot saved", "reason", reason)
	return nil
}

// keepSnapshots is how many snapshots survive each new one.
const keepSnapshots = 20

// loadCatalog returns the built-in modules when path is empty, or when it
// names a YAML file that doesn't exist yet. The first save creates it.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(path)
	if errors.Is(err, fs.ErrNotExist) && isYAMLPath(path) {
		return catalog.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
