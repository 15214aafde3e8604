package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/abhisek/belajar/internal/progress"
)

// FileAdapter keeps the learner state in a JSON document on disk, under
// a single key, the way a browser keeps it in local storage. Other keys in
// the document are left alone.
type FileAdapter struct {
	path string
	key  string
}

var _ progress.Adapter = (*FileAdapter)(nil)

// NewFileAdapter returns an adapter for the document at path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path, key: progress.StorageKey}
}

func (f *FileAdapter) Load(context.Context) (progress.State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return progress.NewState(), nil
	}
	if err != nil {
		return progress.NewState(), fmt.Errorf("read state file: %w", err)
	}
	return DecodeStateValue(gjson.GetBytes(data, gjson.Escape(f.key)))
}

// DecodeStateValue decodes a stored state value. The value may be the
// state object itself or a JSON string holding it.
func DecodeStateValue(v gjson.Result) (progress.State, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return progress.NewState(), nil
	}
	raw := v.Raw
	if v.Type == gjson.String {
		raw = v.String()
	}
	var s progress.State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return progress.NewState(), fmt.Errorf("decode state: %w", err)
	}
	return s.Normalize(), nil
}

// Save writes the state under the storage key. A missing, unreadable or
// non-object document is replaced by a fresh one.
func (f *FileAdapter) Save(_ context.Context, s progress.State) error {
	doc, err := os.ReadFile(f.path)
	if err != nil || !gjson.ParseBytes(doc).IsObject() {
		doc = []byte("{}")
	}

	value, err := json.Marshal(s.Normalize())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	doc, err = sjson.SetRawBytes(doc, gjson.Escape(f.key), value)
	if err != nil {
		return fmt.Errorf("set state key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
