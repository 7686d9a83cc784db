// internal/render/table.go

// Package render draws the board in a terminal.
package render

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/status"
)

// Options controls table output.
type Options struct {
	// Color enables ANSI colours for icons.
	Color bool
}

// DetectOptions enables colour only when w is a terminal.
func DetectOptions(w io.Writer) Options {
	f, ok := w.(*os.File)
	return Options{Color: ok && term.IsTerminal(int(f.Fd()))}
}

// Table renders one page as a two-column table.
func Table(w io.Writer, page dashboard.Page, opts Options) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(page.Title)

	for _, r := range page.Rows {
		t.AppendRow(table.Row{r.Label, cell(r, opts)})
	}

	mode := "idle"
	if page.Live {
		mode = "live"
	}
	t.AppendFooter(table.Row{mode, page.RenderedAt})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	t.Render()
}

func cell(r dashboard.Row, opts Options) string {
	if r.Icon == status.IconNone {
		return r.Value
	}

	glyph := r.Icon.Glyph()
	if !opts.Color {
		return glyph + " " + r.Icon.String()
	}
	return iconColors(r.Icon).Sprint(glyph)
}

func iconColors(i status.Icon) text.Colors {
	switch i {
	case status.IconUp:
		return text.Colors{text.FgGreen, text.Bold}
	case status.IconDown:
		return text.Colors{text.FgRed, text.Bold}
	default:
		return text.Colors{text.FgHiBlack}
	}
}
