package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pyfix/internal/diag"
	"pyfix/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	codeColor = color.New(color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev> <CODE>: <Message>
// затем, если включён контекст, исходную строку с подчёркиванием ^~~~ по Span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeOne(w, d, fs, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				start, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
					displayPath(fs, n.Span.File, opts.PathMode), start.Line, start.Col, n.Msg)
			}
		}
	}
}

func writeOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = codeColor.Sprint(code)
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col, sev, code, d.Message)

	if opts.Context {
		writeContext(w, d, fs, start)
	}
}

// writeContext печатает исходную строку и подчёркивание под Span. Ширина
// символов учитывается честно, чтобы каретка не съезжала на табах и CJK.
func writeContext(w io.Writer, d diag.Diagnostic, fs *source.FileSet, start source.LineCol) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		return
	}
	line := f.Line(int(start.Line))
	if line == "" {
		return
	}

	fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(line, "\t", "    "))

	prefix := line[:min(int(start.Col)-1, len(line))]
	pad := runewidth.StringWidth(strings.ReplaceAll(prefix, "\t", "    "))

	span := int(d.Primary.Len())
	if span < 1 {
		span = 1
	}
	marker := "^" + strings.Repeat("~", span-1)
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), marker)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	default:
		return f.Path
	}
}
