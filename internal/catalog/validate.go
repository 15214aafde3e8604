package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no module has the requested id.
	ErrNotFound = errors.New("module not found")

	// ErrDuplicateID is returned when a module id is already taken.
	ErrDuplicateID = errors.New("duplicate module id")
)

// Validate checks a single module's structural invariants.
func Validate(m Module) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("module id is required")
	}
	for i, q := range m.Quiz {
		if len(q.Choices) == 0 {
			return fmt.Errorf("quiz item %d: no choices", i+1)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			return fmt.Errorf("quiz item %d: correct index %d outside [0, %d)",
				i+1, q.CorrectIndex, len(q.Choices))
		}
	}
	return nil
}

// ValidateAll validates every module and checks that ids are unique.
func ValidateAll(modules []Module) error {
	seen := make(map[string]bool, len(modules))
	for _, m := range modules {
		if err := Validate(m); err != nil {
			return fmt.Errorf("module %q: %w", m.ID, err)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}
