package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"emx/internal/diag"
	"emx/internal/source"
)

func makeBagWithSpan(t *testing.T) (*diag.Bag, *source.FileSet, source.Span) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("expr", []byte("age >> 18"))
	span := source.Span{File: fileID, Start: 4, End: 6}

	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "unexpected token: >>",
		Primary:  span,
	})
	return bag, fs, span
}

func TestPrettyPlain(t *testing.T) {
	bag, fs, _ := makeBagWithSpan(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()

	for _, want := range []string{
		"expr:1:5",
		"ERROR EMX2001",
		"unexpected token: >>",
		"age >> 18",
		"^~",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyEmptySpanHasNoLocation(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.ConvFellBack,
		Message:  "falling back",
		Primary:  source.Span{},
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	out := buf.String()

	if !strings.HasPrefix(out, "WARNING EMX3005") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPrettyNotes(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "boom",
		Primary:  source.Span{},
		Notes:    []diag.Note{{Msg: "extra detail"}},
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "note: extra detail") {
		t.Fatalf("notes missing:\n%s", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs, _ := makeBagWithSpan(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true})
	if err != nil {
		t.Fatal(err)
	}

	var out []DiagnosticOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(out) != 1 {
		t.Fatalf("got %d entries", len(out))
	}
	entry := out[0]
	if entry.Code != "EMX2001" || entry.Severity != "ERROR" {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.Line != 1 || entry.Col != 5 {
		t.Fatalf("position = %d:%d", entry.Line, entry.Col)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag := diag.NewBag(0)
	for i := 0; i < 5; i++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SynUnexpectedToken,
			Message:  "x",
		})
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, nil, JSONOpts{Max: 2}); err != nil {
		t.Fatal(err)
	}
	var out []DiagnosticOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}
}
