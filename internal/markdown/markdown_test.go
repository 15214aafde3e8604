package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func render(t *testing.T, src string) string {
	t.Helper()
	return ansi.Strip(New().Render(src, 80))
}

func TestRender_Empty(t *testing.T) {
	for _, src := range []string{"", "   \n\t"} {
		if got := render(t, src); !strings.Contains(got, Placeholder) {
			t.Errorf("Render(%q) = %q, want placeholder", src, got)
		}
	}
}

func TestRender_Elements(t *testing.T) {
	src := strings.Join([]string{
		"# Termokimia",
		"",
		"Reaksi **eksoterm** melepas kalor, *endoterm* menyerap.",
		"",
		"- Sistem",
		"- Lingkungan",
		"",
		"1. Satu",
		"2. Dua",
		"",
		"> Catatan penting",
		"",
		"```",
		"ΔH = H_produk - H_reaktan",
		"```",
		"",
		"Lihat [video](https://example.com/v) dan `q = m·c·ΔT`.",
		"",
		"---",
	}, "\n")
	got := render(t, src)

	for _, want := range []string{
		"Termokimia",
		"eksoterm",
		"endoterm",
		"• Sistem",
		"• Lingkungan",
		"1. Satu",
		"2. Dua",
		"│ Catatan penting",
		"ΔH = H_produk - H_reaktan",
		"video (https://example.com/v)",
		"q = m·c·ΔT",
		"───",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "**") || strings.Contains(got, "```") {
		t.Errorf("markdown syntax leaked into output:\n%s", got)
	}
}

func TestRender_OrderedStart(t *testing.T) {
	got := render(t, "3. tiga\n4. empat\n")
	if !strings.Contains(got, "3. tiga") || !strings.Contains(got, "4. empat") {
		t.Errorf("ordered list start not kept:\n%s", got)
	}
}

func TestRender_TaskList(t *testing.T) {
	got := render(t, "- [x] baca materi\n- [ ] kerjakan kuis\n")
	if !strings.Contains(got, "[x] baca materi") || !strings.Contains(got, "[ ] kerjakan kuis") {
		t.Errorf("task list not rendered:\n%s", got)
	}
}

func TestRender_Wraps(t *testing.T) {
	long := strings.Repeat("kata ", 40)
	out := ansi.Strip(New().Render(long, 30))
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 30 {
			t.Errorf("line width %d exceeds 30: %q", w, line)
		}
	}
}
