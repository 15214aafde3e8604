package store

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/abhisek/belajar/internal/progress"
)

// LegacyStorageKey is the key the browser version kept its state under.
const LegacyStorageKey = "media-belajar-state-v1"

// ParseLegacyState reads learner state exported from the browser version.
// data may be a whole local storage dump holding LegacyStorageKey or
// progress.StorageKey, or the state value itself. Both the original
// "progres"/"catatan" field names and "progress"/"notes" are accepted.
func ParseLegacyState(data []byte) (progress.State, error) {
	if !gjson.ValidBytes(data) {
		return progress.NewState(), fmt.Errorf("legacy state is not valid JSON")
	}

	doc := gjson.ParseBytes(data)
	for _, key := range []string{LegacyStorageKey, progress.StorageKey} {
		if v := doc.Get(gjson.Escape(key)); v.Exists() {
			doc = v
			break
		}
	}
	if doc.Type == gjson.String {
		if !gjson.Valid(doc.String()) {
			return progress.NewState(), fmt.Errorf("legacy state value is not valid JSON")
		}
		doc = gjson.Parse(doc.String())
	}
	if !doc.IsObject() {
		return progress.NewState(), fmt.Errorf("legacy state must be an object")
	}

	s := progress.NewState()
	prog := firstOf(doc, "progres", "progress")
	prog.ForEach(func(id, pct gjson.Result) bool {
		if pct.Type == gjson.Number {
			s.Progress[id.String()] = int(pct.Int())
		}
		return true
	})
	notes := firstOf(doc, "catatan", "notes")
	notes.ForEach(func(id, text gjson.Result) bool {
		if text.Type == gjson.String {
			s.Notes[id.String()] = text.String()
		}
		return true
	})
	return s.Normalize(), nil
}

func firstOf(doc gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := doc.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}
