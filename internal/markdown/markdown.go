// Package markdown renders lesson content for the terminal. It parses
// with goldmark and walks the AST into lipgloss-styled text.
package markdown

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/abhisek/belajar/internal/ui/theme"
)

// Placeholder is shown for a module without lesson content.
const Placeholder = "No material yet."

const minWidth = 20

// Styles controls how each element is drawn.
type Styles struct {
	H1          lipgloss.Style
	H2          lipgloss.Style
	H3          lipgloss.Style
	Emph        lipgloss.Style
	Strong      lipgloss.Style
	Strike      lipgloss.Style
	Code        lipgloss.Style
	CodeBlock   lipgloss.Style
	Quote       lipgloss.Style
	Link        lipgloss.Style
	Rule        lipgloss.Style
	Bullet      lipgloss.Style
	Placeholder lipgloss.Style
}

// DefaultStyles uses the application palette.
func DefaultStyles() Styles {
	return Styles{
		H1:          lipgloss.NewStyle().Bold(true).Underline(true).Foreground(theme.Primary),
		H2:          lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		H3:          lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Emph:        lipgloss.NewStyle().Italic(true),
		Strong:      lipgloss.NewStyle().Bold(true),
		Strike:      lipgloss.NewStyle().Strikethrough(true),
		Code:        lipgloss.NewStyle().Foreground(theme.Accent),
		CodeBlock:   lipgloss.NewStyle().Foreground(theme.Accent).PaddingLeft(2),
		Quote:       lipgloss.NewStyle().Foreground(theme.TextDim),
		Link:        lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true),
		Rule:        lipgloss.NewStyle().Foreground(theme.Border),
		Bullet:      lipgloss.NewStyle().Foreground(theme.Secondary),
		Placeholder: theme.Hint,
	}
}

// Renderer turns markdown into styled terminal text.
type Renderer struct {
	md     goldmark.Markdown
	styles Styles
}

// New returns a renderer with GitHub Flavored Markdown enabled.
func New() *Renderer {
	return NewWithStyles(DefaultStyles())
}

func NewWithStyles(s Styles) *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		styles: s,
	}
}

// Render renders src wrapped to width columns.
func (r *Renderer) Render(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return r.styles.Placeholder.Render(Placeholder)
	}
	source := []byte(src)
	doc := r.md.Parser().Parse(text.NewReader(source))

	w := &walker{styles: r.styles, src: source}
	return strings.Join(w.blocks(doc, max(width, minWidth)), "\n\n")
}

type walker struct {
	styles Styles
	src    []byte
}

func (w *walker) blocks(parent ast.Node, width int) []string {
	var out []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if s, ok := w.block(n, width); ok {
			out = append(out, s)
		}
	}
	return out
}

func (w *walker) block(n ast.Node, width int) (string, bool) {
	switch n := n.(type) {
	case *ast.Heading:
		style := w.styles.H3
		switch n.Level {
		case 1:
			style = w.styles.H1
		case 2:
			style = w.styles.H2
		}
		return wrap(style.Render(w.inline(n)), width), true

	case *ast.Paragraph, *ast.TextBlock:
		return wrap(w.inline(n), width), true

	case *ast.List:
		return w.list(n, width), true

	case *ast.Blockquote:
		inner := strings.Join(w.blocks(n, width-2), "\n\n")
		bar := w.styles.Quote.Render("│ ")
		lines := strings.Split(inner, "\n")
		for i, l := range lines {
			lines[i] = bar + w.styles.Quote.Render(l)
		}
		return strings.Join(lines, "\n"), true

	case *ast.FencedCodeBlock:
		return w.styles.CodeBlock.Render(w.lines(n)), true

	case *ast.CodeBlock:
		return w.styles.CodeBlock.Render(w.lines(n)), true

	case *ast.ThematicBreak:
		return w.styles.Rule.Render(strings.Repeat("─", width)), true

	case *east.Table:
		return w.table(n), true

	case *ast.HTMLBlock:
		return "", false

	default:
		inner := w.blocks(n, width)
		if len(inner) == 0 {
			return "", false
		}
		return strings.Join(inner, "\n\n"), true
	}
}

func (w *walker) lines(n ast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(w.src))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *walker) list(l *ast.List, width int) string {
	num := l.Start
	if num == 0 {
		num = 1
	}
	var items []string
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		pad := strings.Repeat(" ", lipgloss.Width(marker))
		sep := "\n"
		if !l.IsTight {
			sep = "\n\n"
		}
		body := strings.Join(w.blocks(item, width-len(pad)), sep)
		lines := strings.Split(body, "\n")
		for i := range lines {
			if i == 0 {
				lines[i] = w.styles.Bullet.Render(marker) + lines[i]
			} else if lines[i] != "" {
				lines[i] = pad + lines[i]
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}
	return strings.Join(items, "\n")
}

func (w *walker) table(t *east.Table) string {
	var rows []string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, w.inline(cell))
		}
		line := strings.Join(cells, " │ ")
		if _, ok := row.(*east.TableHeader); ok {
			line = w.styles.Strong.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (w *walker) inline(parent ast.Node) string {
	var b strings.Builder
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Value(w.src))
			switch {
			case n.HardLineBreak():
				b.WriteString("\n")
			case n.SoftLineBreak():
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.CodeSpan:
			b.WriteString(w.styles.Code.Render(w.plain(n)))
		case *ast.Emphasis:
			if n.Level >= 2 {
				b.WriteString(w.styles.Strong.Render(w.inline(n)))
			} else {
				b.WriteString(w.styles.Emph.Render(w.inline(n)))
			}
		case *ast.Link:
			label := w.inline(n)
			dest := string(n.Destination)
			if label == "" || label == dest {
				b.WriteString(w.styles.Link.Render(dest))
			} else {
				b.WriteString(label + " (" + w.styles.Link.Render(dest) + ")")
			}
		case *ast.AutoLink:
			b.WriteString(w.styles.Link.Render(string(n.URL(w.src))))
		case *ast.Image:
			b.WriteString("[image: " + w.plain(n) + "]")
		case *east.Strikethrough:
			b.WriteString(w.styles.Strike.Render(w.inline(n)))
		case *east.TaskCheckBox:
			if n.IsChecked {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
		case *ast.RawHTML:
		default:
			b.WriteString(w.inline(n))
		}
	}
	return b.String()
}

// plain concatenates the literal text below n.
func (w *walker) plain(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Value(w.src))
		case *ast.String:
			b.Write(c.Value)
		default:
			b.WriteString(w.plain(c))
		}
	}
	return b.String()
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
