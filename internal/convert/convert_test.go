package convert

import (
	"strings"
	"testing"
	"unicode/utf8"

	"emx/internal/diag"
	"emx/internal/source"
	"emx/internal/transpile"
)

func newTestConverter() (*Converter, *diag.Bag) {
	bag := diag.NewBag(0)
	c := New(source.NewFileSet(), &diag.BagReporter{Bag: bag})
	return c, bag
}

func expectRelevance(t *testing.T, src, want string) {
	t.Helper()
	c, _ := newTestConverter()
	if got := c.Relevance(src).Text; got != want {
		t.Fatalf("Relevance(%q) = %q, want %q", src, got, want)
	}
}

func expectConstraint(t *testing.T, src, want string) {
	t.Helper()
	c, _ := newTestConverter()
	if got := c.Constraint(src).Text; got != want {
		t.Fatalf("Constraint(%q) = %q, want %q", src, got, want)
	}
}

func expectCalculation(t *testing.T, src, want string) {
	t.Helper()
	c, _ := newTestConverter()
	if got := c.Calculation(src).Text; got != want {
		t.Fatalf("Calculation(%q) = %q, want %q", src, got, want)
	}
}

func TestRelevanceSimpleComparison(t *testing.T) {
	expectRelevance(t, "${age} > 18", "age > 18")
}

func TestRelevanceSelectedAndComparison(t *testing.T) {
	expectRelevance(t,
		"selected(${consent}, 'yes') and ${age} >= 18",
		`(consent=="yes") and age >= 18`)
}

func TestRelevanceSelectedQuoteStylesNormalize(t *testing.T) {
	expectRelevance(t, `selected(${f}, 'v')`, `(f=="v")`)
	expectRelevance(t, `selected(${f}, "v")`, `(f=="v")`)
}

func TestRelevanceUppercaseBooleans(t *testing.T) {
	expectRelevance(t, "${a} > 1 AND ${b} < 2 OR ${c} = 3",
		"a > 1 and b < 2 or (c==3)")
}

func TestRelevanceCountCall(t *testing.T) {
	expectRelevance(t, "count(${items}) > 0", "count(items) > 0")
}

func TestRelevanceUnderscoreStripping(t *testing.T) {
	expectRelevance(t, "${user_first_name} != ''", "userfirstname != ''")
}

func TestRelevanceEmptyInput(t *testing.T) {
	expectRelevance(t, "", "1")
	expectRelevance(t, "   ", "1")
}

func TestRelevanceParseFailureFallsBack(t *testing.T) {
	c, bag := newTestConverter()
	res := c.Relevance("${age} >")
	if res.Text != "1" || res.Outcome != FellBack {
		t.Fatalf("got %+v, want fallback", res)
	}
	if !bag.HasErrors() {
		t.Fatal("expected a parse diagnostic")
	}
}

func TestRelevanceUnsupportedFunctionFallsBack(t *testing.T) {
	c, bag := newTestConverter()
	res := c.Relevance("frobnicate(${a})")
	if res.Text != "1" || res.Outcome != FellBack {
		t.Fatalf("got %+v, want fallback", res)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ConvUnsupportedFunction {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ConvUnsupportedFunction in %v", bag.Items())
	}
}

func TestRelevancePathAlgebraFallsBack(t *testing.T) {
	c, bag := newTestConverter()
	res := c.Relevance("data/group/field > 1")
	if res.Text != "1" {
		t.Fatalf("got %q, want fallback", res.Text)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ConvUnsupportedOperator {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ConvUnsupportedOperator in %v", bag.Items())
	}
}

func TestQuoteInputTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("ф", 60) // 120 байт двухбайтовых рун
	got := quoteInput(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated input is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...`") {
		t.Fatalf("expected truncation marker, got %q", got)
	}
	if got := quoteInput("short"); got != "`short`" {
		t.Fatalf("short input must pass through, got %q", got)
	}
}

func TestRelevanceStarNodeTestFallsBack(t *testing.T) {
	c, bag := newTestConverter()
	res := c.Relevance("* > 5")
	if res.Text != "1" || res.Outcome != FellBack {
		t.Fatalf("got %+v, want fallback", res)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ConvUnsupportedOperator {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ConvUnsupportedOperator in %v", bag.Items())
	}
}

func TestConstraintRangeBecomesRegex(t *testing.T) {
	expectConstraint(t, ". >= 18 and . <= 99", `/^\d{2}$/`)
	expectConstraint(t, ". >= 18 and . <= 100", `/^\d{2,3}$/`)
}

func TestConstraintMinMaxOnly(t *testing.T) {
	expectConstraint(t, ". >= 18", `/^\d{2,}$/`)
	expectConstraint(t, ". <= 100", `/^\d{1,3}$/`)
}

func TestConstraintRawRegexPassThrough(t *testing.T) {
	expectConstraint(t, `^\d{4}$`, `^\d{4}$`)
}

func TestConstraintEmbeddedRegexMatch(t *testing.T) {
	expectConstraint(t,
		`regexMatch("^[A-Z][a-z]+$", name)`,
		`regexMatch('^[A-Z][a-z]+$', name)`)
}

func TestConstraintAmbiguousRegexMatchIsUnsupported(t *testing.T) {
	c, bag := newTestConverter()
	res := c.Constraint(`regexMatch("^a$", "^b$")`)
	if res.Text != "" || res.Outcome != FellBack {
		t.Fatalf("got %+v, want empty fallback", res)
	}
	if !bag.HasWarnings() {
		t.Fatal("expected a fallback warning")
	}
}

func TestConstraintBooleanFallsThroughToTranspile(t *testing.T) {
	// No heuristic shape matches, this is ordinary boolean XPath.
	expectConstraint(t, "${age} > 0 and ${age} < 150", "age > 0 and age < 150")
}

func TestConstraintEmptyAndFailure(t *testing.T) {
	expectConstraint(t, "", "")
	expectConstraint(t, "${age} >", "")
}

func TestCalculationBareAssignment(t *testing.T) {
	expectCalculation(t,
		"${total} = ${price} * ${quantity}",
		"total = price * quantity")
}

func TestCalculationDoubleEqualsStillTight(t *testing.T) {
	expectCalculation(t, "${a} == ${b}", "(a==b)")
}

func TestCalculationEmptyAndFailure(t *testing.T) {
	expectCalculation(t, "", "")
	expectCalculation(t, "${a} +", "")
}

func TestCalculationArithmetic(t *testing.T) {
	expectCalculation(t, "${a} + ${b} * ${c}", "a + b * c")
	expectCalculation(t, "(${a} + ${b}) * ${c}", "(a + b) * c")
}

func TestDeterminism(t *testing.T) {
	c, _ := newTestConverter()
	src := "selected(${consent}, 'yes') and ${age} >= 18"
	first := c.Relevance(src)
	second := c.Relevance(src)
	if first != second {
		t.Fatalf("conversion is not deterministic: %+v vs %+v", first, second)
	}
}

func TestFallbackNeverPanics(t *testing.T) {
	c, _ := newTestConverter()
	inputs := []string{
		"@#$%",
		"((((",
		"'unterminated",
		"${}",
		"1abc + 2",
		"../parent/field",
	}
	for _, src := range inputs {
		if got := c.Relevance(src).Text; got != "1" && got == "" {
			t.Fatalf("Relevance(%q) returned empty string", src)
		}
		c.Constraint(src)
		c.Calculation(src)
	}
}

func TestKindDispatch(t *testing.T) {
	c, _ := newTestConverter()
	if got := c.Kind(transpile.KindRelevance, "").Text; got != "1" {
		t.Fatalf("relevance fallback = %q", got)
	}
	if got := c.Kind(transpile.KindConstraint, "").Text; got != "" {
		t.Fatalf("constraint fallback = %q", got)
	}
}
