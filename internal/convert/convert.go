// Package convert is the single-expression conversion boundary. It
// strings the preprocessor, lexer, parser, transpiler and the constraint
// heuristics together and guarantees the caller a string: failures are
// reported through the injected diag.Reporter and degrade to the
// per-kind fallback, never to an error return.
package convert

import (
	"errors"
	"strings"
	"unicode/utf8"

	"emx/internal/diag"
	"emx/internal/heuristic"
	"emx/internal/lexer"
	"emx/internal/parser"
	"emx/internal/preprocess"
	"emx/internal/source"
	"emx/internal/transpile"
)

// Outcome classifies a conversion result.
type Outcome uint8

const (
	// Converted — выражение переведено по существу.
	Converted Outcome = iota
	// FellBack — сработал аварийный ответ вида.
	FellBack
)

func (o Outcome) String() string {
	if o == FellBack {
		return "fell-back"
	}
	return "converted"
}

// Result carries the produced text plus how it was produced. Text is
// total: it is the fallback when Outcome is FellBack.
type Result struct {
	Text    string
	Outcome Outcome
}

// Converter converts one expression at a time. It holds no per-call
// state beyond the file set used to give diagnostics positions, so a
// single value may be shared across goroutines only if the file set is.
type Converter struct {
	files    *source.FileSet
	reporter diag.Reporter
}

// New returns a converter reporting into r. Pass diag.NopReporter{} to
// convert silently.
func New(files *source.FileSet, r diag.Reporter) *Converter {
	if files == nil {
		files = source.NewFileSet()
	}
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Converter{files: files, reporter: r}
}

// Files returns the file set diagnostics resolve against.
func (c *Converter) Files() *source.FileSet { return c.files }

// Relevance converts a relevance expression. Empty input and every
// failure yield "1" (always shown).
func (c *Converter) Relevance(src string) Result {
	return c.convert(src, transpile.KindRelevance, "relevance")
}

// Constraint converts a constraint expression. The heuristic shapes are
// tried on the raw string first; empty input and failures yield "".
func (c *Converter) Constraint(src string) Result {
	if strings.TrimSpace(src) == "" {
		return Result{Text: "", Outcome: FellBack}
	}
	if out, matched := heuristic.Extract(src); matched {
		if out == "" {
			c.reportFallback(src, "constraint", "recognized constraint shape has no equivalent")
			return Result{Text: "", Outcome: FellBack}
		}
		return Result{Text: out, Outcome: Converted}
	}
	return c.convert(src, transpile.KindConstraint, "constraint")
}

// Calculation converts a calculation expression. Empty input and
// failures yield ""; a bare `=` keeps assignment spelling.
func (c *Converter) Calculation(src string) Result {
	return c.convert(src, transpile.KindCalculation, "calculation")
}

// Kind dispatches by transpile kind; the driver uses it when the kind
// comes from data rather than code.
func (c *Converter) Kind(kind transpile.Kind, src string) Result {
	switch kind {
	case transpile.KindRelevance:
		return c.Relevance(src)
	case transpile.KindConstraint:
		return c.Constraint(src)
	default:
		return c.Calculation(src)
	}
}

func fallbackFor(kind transpile.Kind) string {
	if kind == transpile.KindRelevance {
		return "1"
	}
	return ""
}

func (c *Converter) convert(src string, kind transpile.Kind, what string) Result {
	if strings.TrimSpace(src) == "" {
		return Result{Text: fallbackFor(kind), Outcome: FellBack}
	}

	normalized := preprocess.Normalize(src)
	fileID := c.files.AddVirtual(what, []byte(normalized))
	file := c.files.Get(fileID)

	lx := lexer.New(file, lexer.Options{Reporter: c.reporter})
	node, ok := parser.ParseExpression(lx, parser.Options{Reporter: c.reporter})
	if !ok {
		c.reportFallback(src, what, "expression does not parse")
		return Result{Text: fallbackFor(kind), Outcome: FellBack}
	}

	out, err := transpile.Transpile(node, kind)
	if err != nil {
		diag.ReportError(c.reporter, transpileCode(err), node.Span(), err.Error())
		c.reportFallback(src, what, err.Error())
		return Result{Text: fallbackFor(kind), Outcome: FellBack}
	}
	return Result{Text: out, Outcome: Converted}
}

// transpileCode maps a transpile failure onto its diagnostic code.
func transpileCode(err error) diag.Code {
	switch {
	case errors.Is(err, transpile.ErrUnsupportedFunction):
		return diag.ConvUnsupportedFunction
	case errors.Is(err, transpile.ErrArityMismatch):
		return diag.ConvArityMismatch
	case errors.Is(err, transpile.ErrUnsupportedOperator):
		return diag.ConvUnsupportedOperator
	default:
		return diag.ConvMalformedNode
	}
}

func (c *Converter) reportFallback(src, what, reason string) {
	msg := "falling back on " + what + " " + quoteInput(src) + ": " + reason
	diag.ReportWarning(c.reporter, diag.ConvFellBack, source.Span{}, msg)
}

func quoteInput(s string) string {
	if len(s) > 80 {
		cut := 77
		// не резать многобайтовую руну посередине
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return "`" + s + "`"
}
