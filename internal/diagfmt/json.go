package diagfmt

import (
	"encoding/json"
	"io"

	"emx/internal/diag"
	"emx/internal/source"
)

// DiagnosticOutput — одна диагностика в JSON-выводе.
type DiagnosticOutput struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Path     string       `json:"path,omitempty"`
	Line     uint32       `json:"line,omitempty"`
	Col      uint32       `json:"col,omitempty"`
	Notes    []NoteOutput `json:"notes,omitempty"`
}

// NoteOutput — примечание диагностики в JSON-выводе.
type NoteOutput struct {
	Message string `json:"message"`
}

// JSON пишет диагностики одним JSON-массивом.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	out := make([]DiagnosticOutput, 0, len(items))
	for _, d := range items {
		entry := DiagnosticOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if fs != nil && !d.Primary.Empty() {
			file := fs.Get(d.Primary.File)
			entry.Path = file.FormatPath(opts.PathMode.formatArg(), fs.BaseDir())
			if opts.IncludePositions {
				start, _ := fs.Resolve(d.Primary)
				entry.Line = start.Line
				entry.Col = start.Col
			}
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				entry.Notes = append(entry.Notes, NoteOutput{Message: note.Msg})
			}
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
