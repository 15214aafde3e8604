package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.Bold)
	goodColor    = color.New(color.FgGreen)
	partColor    = color.New(color.FgYellow)
	badColor     = color.New(color.FgRed)
	dimColor     = color.New(color.Faint)
)

func warnf(w io.Writer, format string, args ...any) {
	partColor.Fprintf(w, "warning: "+format+"\n", args...)
}

func ruler(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

// percentCell formats p right-aligned in four columns, colored by how
// far along it is. Padding happens before coloring so columns line up.
func percentCell(p int) string {
	s := fmt.Sprintf("%3d%%", p)
	switch {
	case p >= 100:
		return goodColor.Sprint(s)
	case p > 0:
		return partColor.Sprint(s)
	default:
		return dimColor.Sprint(s)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
