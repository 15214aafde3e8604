package catalog

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultLevels are always offered by the level selector, in this order.
var DefaultLevels = []string{LevelSMP, LevelSMA, LevelSMK}

// Filter returns the modules whose title and description contain query
// (case-insensitive) and whose level matches. Order is preserved. An empty
// query matches everything; LevelAll matches every level.
func Filter(modules []Module, query, level string) []Module {
	q := strings.ToLower(query)
	return lo.Filter(modules, func(m Module, _ int) bool {
		haystack := strings.ToLower(m.Title + " " + m.Description)
		if !strings.Contains(haystack, q) {
			return false
		}
		return level == LevelAll || m.Level == level
	})
}

// Levels returns the default levels followed by any other level used by
// modules, in first-seen order.
func Levels(modules []Module) []string {
	used := lo.Map(modules, func(m Module, _ int) string { return m.Level })
	all := append(append([]string(nil), DefaultLevels...), used...)
	return lo.Filter(lo.Uniq(all), func(l string, _ int) bool { return l != "" })
}
