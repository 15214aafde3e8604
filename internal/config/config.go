// Package config resolves application settings from defaults and
// BELAJAR_* environment variables. Command-line flags are applied on top
// by the cmd package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Persistence backends for learner state.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

const appName = "belajar"

// Config holds the resolved settings.
type Config struct {
	// DBPath is the SQLite database holding the event log and, with the
	// sqlite store, the learner state.
	DBPath string

	// Store selects where learner state is persisted.
	Store string

	// StateFile is the JSON document used by the file store.
	StateFile string

	// RedisURL is the connection URL used by the redis store.
	RedisURL string

	// CatalogPath is a YAML file or directory of modules. Empty means the
	// built-in modules.
	CatalogPath string

	LogPath string
	LogMode string

	// Seed drives flashcard shuffling. Zero means seed from the clock.
	Seed uint64

	// Teacher enables the content editor.
	Teacher bool
}

// Default returns the built-in settings with XDG-resolved paths.
func Default() (Config, error) {
	dataHome, err := xdgDir("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return Config{}, err
	}
	stateHome, err := xdgDir("XDG_STATE_HOME", ".local", "state")
	if err != nil {
		return Config{}, err
	}
	return Config{
		DBPath:    filepath.Join(dataHome, appName, appName+".db"),
		Store:     StoreSQLite,
		StateFile: filepath.Join(dataHome, appName, "state.json"),
		LogPath:   filepath.Join(stateHome, appName, appName+".log"),
		LogMode:   "dev",
	}, nil
}

// FromEnv returns Default overridden by environment variables.
func FromEnv() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if v := os.Getenv("BELAJAR_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BELAJAR_STORE"); v != "" {
		cfg.Store = strings.ToLower(v)
	}
	if v := os.Getenv("BELAJAR_STATE_FILE"); v != "" {
		cfg.StateFile = v
	}
	if v := os.Getenv("BELAJAR_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("BELAJAR_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("BELAJAR_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("BELAJAR_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("BELAJAR_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse BELAJAR_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("BELAJAR_TEACHER"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse BELAJAR_TEACHER: %w", err)
		}
		cfg.Teacher = on
	}

	return cfg, nil
}

// Validate checks that the selected store has what it needs.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("database path is required for the sqlite store")
		}
	case StoreFile:
		if c.StateFile == "" {
			return fmt.Errorf("BELAJAR_STATE_FILE is required for the file store")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("BELAJAR_REDIS_URL is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store: %q", c.Store)
	}
	return nil
}

// ShuffleSeed returns the configured seed, or one taken from the clock.
func (c Config) ShuffleSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func xdgDir(env string, fallback ...string) (string, error) {
	if d := os.Getenv(env); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}
