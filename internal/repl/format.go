package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/ghll/foundation/ghll"
	"github.com/msto63/ghll/foundation/ghll/printer"
)

// DefaultTreeColor is ANSI dark gray
const DefaultTreeColor = "8"

// Formatter writes parse results the way the REPL shows them: the tree in
// the tree colour, then the optional token dump and diagnostics, then one
// blank line.
type Formatter struct {
	Tree            lipgloss.Style
	Muted           lipgloss.Style
	Error           lipgloss.Style
	ShowTokens      bool
	ShowDiagnostics bool
}

// NewFormatter creates a formatter whose styles are rendered for w, so
// colours are dropped when w is not a terminal
func NewFormatter(w io.Writer, treeColor string) *Formatter {
	if treeColor == "" {
		treeColor = DefaultTreeColor
	}
	r := lipgloss.NewRenderer(w)
	return &Formatter{
		Tree:  r.NewStyle().Foreground(lipgloss.Color(treeColor)),
		Muted: r.NewStyle().Faint(true),
		Error: r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// WriteResult writes one result
func (f *Formatter) WriteResult(w io.Writer, res *ghll.Result) error {
	var b strings.Builder
	for _, line := range res.Tree {
		b.WriteString(f.Tree.Render(line))
		b.WriteByte('\n')
	}

	if f.ShowTokens {
		b.WriteString(f.Muted.Render("tokens:"))
		b.WriteByte('\n')
		for _, line := range printer.RenderTokens(res.Tokens) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	if f.ShowDiagnostics {
		for _, d := range res.Diagnostics {
			b.WriteString(f.Error.Render("! " + d.String()))
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteError writes a processing error followed by a blank line
func (f *Formatter) WriteError(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "%s\n\n", f.Error.Render("error: "+err.Error()))
	return werr
}
