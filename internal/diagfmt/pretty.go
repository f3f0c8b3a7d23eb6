package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"emx/internal/diag"
	"emx/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид. Идёт по
// bag.Items() (ожидается bag.Sort() заранее). Для каждой диагностики
// печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d, opts)
		writeContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(w, "  note: %s\n", note.Msg)
				writeContext(w, fs, note.Span, opts)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	sev := d.Severity.String()
	if opts.Color {
		switch d.Severity {
		case diag.SevError:
			sev = errorColor.Sprint(sev)
		case diag.SevWarning:
			sev = warningColor.Sprint(sev)
		default:
			sev = infoColor.Sprint(sev)
		}
	}

	if loc, ok := locate(fs, d.Primary, opts.PathMode); ok {
		fmt.Fprintf(w, "%s: %s %s: %s\n", loc, sev, d.Code.ID(), d.Message)
		return
	}
	fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
}

// writeContext печатает строку исходника и подчёркивание под спаном.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	if fs == nil || span.Empty() {
		return
	}
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
		line = runewidth.Truncate(line, opts.Width, "…")
	}
	fmt.Fprintf(w, "  %s\n", line)

	// Подчёркивание считаем в экранных колонках, не в байтах.
	prefix := prefixWidth(line, int(start.Col)-1)
	length := 1
	if end.Line == start.Line && end.Col > start.Col {
		length = int(end.Col - start.Col)
	}
	marker := "^" + strings.Repeat("~", max(length-1, 0))
	if opts.Color {
		marker = caretColor.Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", prefix), marker)
}

// prefixWidth возвращает экранную ширину первых n байт строки.
func prefixWidth(line string, n int) int {
	if n <= 0 {
		return 0
	}
	if n > len(line) {
		n = len(line)
	}
	return runewidth.StringWidth(line[:n])
}

func locate(fs *source.FileSet, span source.Span, mode PathMode) (string, bool) {
	if fs == nil || span.Empty() {
		return "", false
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := file.FormatPath(mode.formatArg(), fs.BaseDir())
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col), true
}
