package diag

import (
	"strings"
	"testing"

	"emx/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		added := b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken})
		if i < 2 && !added {
			t.Fatalf("diagnostic %d rejected before limit", i)
		}
		if i == 2 && added {
			t.Fatal("diagnostic accepted past limit")
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrorsWarnings(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevInfo})
	if b.HasErrors() || b.HasWarnings() {
		t.Fatal("info-only bag must not report errors or warnings")
	}
	b.Add(Diagnostic{Severity: SevWarning})
	if b.HasErrors() {
		t.Fatal("warning must not count as error")
	}
	if !b.HasWarnings() {
		t.Fatal("expected HasWarnings")
	}
	b.Add(Diagnostic{Severity: SevError})
	if !b.HasErrors() {
		t.Fatal("expected HasErrors")
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: ConvFellBack, Primary: source.Span{Start: 8, End: 9}})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{Start: 2, End: 3}})
	b.Sort()

	items := b.Items()
	if items[0].Code != SynUnexpectedToken {
		t.Fatalf("expected parse error first, got %v", items[0].Code)
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr", []byte("${age} >> 18"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "unexpected token",
			Primary:  source.Span{File: id, Start: 7, End: 9},
		},
	}

	got := FormatShortDiagnostics(diags, fs, false)
	want := "error EMX2001 expr:1:8 unexpected token"
	if got != want {
		t.Fatalf("FormatShortDiagnostics = %q, want %q", got, want)
	}
}

func TestFormatShortDiagnosticsMultiline(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr", []byte("x"))

	diags := []Diagnostic{
		{Severity: SevError, Code: LexUnknownChar, Message: "line one\nline two", Primary: source.Span{File: id, Start: 0, End: 1}},
	}
	got := FormatShortDiagnostics(diags, fs, false)
	if strings.Contains(got, "\n") {
		t.Fatalf("message newlines must be flattened: %q", got)
	}
}
