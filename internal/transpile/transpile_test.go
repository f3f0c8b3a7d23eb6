package transpile_test

import (
	"errors"
	"testing"

	"emx/internal/ast"
	"emx/internal/diag"
	"emx/internal/lexer"
	"emx/internal/parser"
	"emx/internal/source"
	"emx/internal/transpile"
)

// parseTree разбирает уже нормализованную строку в дерево
func parseTree(t *testing.T, input string) ast.Expr {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr", []byte(input))
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	expr, ok := parser.ParseExpression(lx, parser.Options{Reporter: reporter})
	if !ok {
		t.Fatalf("parse %q failed: %v", input, bag.Items())
	}
	return expr
}

func mustTranspile(t *testing.T, input string, kind transpile.Kind) string {
	t.Helper()
	out, err := transpile.Transpile(parseTree(t, input), kind)
	if err != nil {
		t.Fatalf("Transpile(%q) error: %v", input, err)
	}
	return out
}

func expectOut(t *testing.T, input string, kind transpile.Kind, want string) {
	t.Helper()
	if got := mustTranspile(t, input, kind); got != want {
		t.Errorf("Transpile(%q, %v) = %q, want %q", input, kind, got, want)
	}
}

func expectErr(t *testing.T, input string, kind transpile.Kind, sentinel error) {
	t.Helper()
	_, err := transpile.Transpile(parseTree(t, input), kind)
	if !errors.Is(err, sentinel) {
		t.Errorf("Transpile(%q) error = %v, want %v", input, err, sentinel)
	}
}

func TestComparisons(t *testing.T) {
	expectOut(t, "age > 18", transpile.KindRelevance, "age > 18")
	expectOut(t, "age >= 18", transpile.KindRelevance, "age >= 18")
	expectOut(t, "age != 18", transpile.KindRelevance, "age != 18")
	expectOut(t, "count(items) > 0", transpile.KindRelevance, "count(items) > 0")
}

func TestEqualityCollapsesExceptCalculation(t *testing.T) {
	// = и == в relevance/constraint — плотная скобочная форма
	expectOut(t, "consent = 'yes'", transpile.KindRelevance, "(consent=='yes')")
	expectOut(t, "consent == 'yes'", transpile.KindConstraint, "(consent=='yes')")
	// в расчётах голый = сохраняется
	expectOut(t, "total = price * quantity", transpile.KindCalculation, "total = price * quantity")
	// а явный == остаётся сравнением и там
	expectOut(t, "a == b", transpile.KindCalculation, "(a==b)")
}

func TestSelectedRewriteRoundTrip(t *testing.T) {
	// вход — то, что выдаёт препроцессор для selected()
	expectOut(t, `(consent=="yes") and age >= 18`, transpile.KindRelevance,
		`(consent=="yes") and age >= 18`)
}

func TestArithmetic(t *testing.T) {
	expectOut(t, "a + b - c", transpile.KindCalculation, "a + b - c")
	expectOut(t, "a div b", transpile.KindCalculation, "a / b")
	expectOut(t, "a mod b", transpile.KindCalculation, "a % b")
	expectOut(t, "(a + b) * c", transpile.KindCalculation, "(a + b) * c")
	expectOut(t, "a - (b - c)", transpile.KindCalculation, "a - (b - c)")
}

func TestBooleanGrouping(t *testing.T) {
	expectOut(t, "a > 1 and b > 2 or c > 3", transpile.KindRelevance,
		"a > 1 and b > 2 or c > 3")
	// явные скобки, меняющие прецеденцию, выживают
	expectOut(t, "(a > 1 or b > 2) and c > 3", transpile.KindRelevance,
		"(a > 1 or b > 2) and c > 3")
}

func TestFunctionTable(t *testing.T) {
	cases := []struct{ in, want string }{
		{"count(items)", "count(items)"},
		{"concat(a, b, c)", "a + b + c"},
		{"regex(name, '^x$')", "regexMatch(name, '^x$')"},
		{"contains(name, 'x')", "contains(name, 'x')"},
		{"string(a)", "a"},
		{"number(a)", "a"},
		{"floor(a)", "floor(a)"},
		{"ceiling(a)", "ceil(a)"},
		{"round(a)", "round(a)"},
		{"sum(a)", "sum(a)"},
		{"substring(name, 1)", "substr(name, 1)"},
		{"substring(name, 1, 3)", "substr(name, 1, 3)"},
		{"string-length(name)", "strlen(name)"},
		{"starts-with(name, 'a')", "startsWith(name, 'a')"},
		{"ends-with(name, 'z')", "endsWith(name, 'z')"},
		{"not(a > 1)", "!(a > 1)"},
		{"if(a > 1, 'x', 'y')", "(a > 1 ? 'x' : 'y')"},
		{"today()", "today()"},
		{"now()", "now()"},
	}
	for _, tc := range cases {
		expectOut(t, tc.in, transpile.KindRelevance, tc.want)
	}
}

func TestNestedCalls(t *testing.T) {
	expectOut(t, "not(contains(name, 'x'))", transpile.KindRelevance,
		"!(contains(name, 'x'))")
	expectOut(t, "concat(string(a), '-', string(b))", transpile.KindCalculation,
		"a + '-' + b")
}

func TestUnsupportedFunction(t *testing.T) {
	expectErr(t, "position()", transpile.KindRelevance, transpile.ErrUnsupportedFunction)
	expectErr(t, "translate(a, b, c)", transpile.KindRelevance, transpile.ErrUnsupportedFunction)
}

func TestArityMismatch(t *testing.T) {
	expectErr(t, "count(a, b)", transpile.KindRelevance, transpile.ErrArityMismatch)
	expectErr(t, "not()", transpile.KindRelevance, transpile.ErrArityMismatch)
	expectErr(t, "if(a, b)", transpile.KindRelevance, transpile.ErrArityMismatch)
	expectErr(t, "substring(a, 1, 2, 3)", transpile.KindRelevance, transpile.ErrArityMismatch)
}

func TestPathAlgebraRejected(t *testing.T) {
	expectErr(t, "a/b", transpile.KindRelevance, transpile.ErrUnsupportedOperator)
	expectErr(t, "a | b", transpile.KindRelevance, transpile.ErrUnsupportedOperator)
	expectErr(t, "items[1]", transpile.KindRelevance, transpile.ErrUnsupportedOperator)
	expectErr(t, ".. > 1", transpile.KindRelevance, transpile.ErrUnsupportedOperator)
	expectErr(t, "@lang = 'en'", transpile.KindRelevance, transpile.ErrUnsupportedOperator)
	// одиночный node-test * тоже не должен просочиться в вывод
	expectErr(t, "* > 5", transpile.KindRelevance, transpile.ErrUnsupportedOperator)
	expectErr(t, "count(*) > 0", transpile.KindRelevance, transpile.ErrUnsupportedOperator)
}

func TestSanitizeAppliedToFieldRefs(t *testing.T) {
	// поля, записанные без ${}, всё равно проходят sanitize
	expectOut(t, "user_first_name != ''", transpile.KindRelevance, "userfirstname != ''")
}

func TestSelfRendering(t *testing.T) {
	expectOut(t, ". >= 18", transpile.KindConstraint, "self >= 18")
}

func TestStringQuotesPreserved(t *testing.T) {
	expectOut(t, "name = 'single'", transpile.KindRelevance, "(name=='single')")
	expectOut(t, `name = "double"`, transpile.KindRelevance, `(name=="double")`)
}

func TestDeterminism(t *testing.T) {
	tree := parseTree(t, "if(a > 1, concat(b, c), count(d))")
	first, err1 := transpile.Transpile(tree, transpile.KindRelevance)
	second, err2 := transpile.Transpile(tree, transpile.KindRelevance)
	if err1 != nil || err2 != nil {
		t.Fatalf("errors: %v %v", err1, err2)
	}
	if first != second {
		t.Fatalf("not deterministic: %q vs %q", first, second)
	}
}

func TestNoEmptyRenderings(t *testing.T) {
	inputs := []string{"a", ".", "1", "'x'", "a > 1", "count(a)"}
	for _, in := range inputs {
		if out := mustTranspile(t, in, transpile.KindRelevance); out == "" {
			t.Errorf("Transpile(%q) rendered empty string", in)
		}
	}
}
