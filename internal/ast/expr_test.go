package ast

import (
	"testing"
)

func TestPathRefPredicates(t *testing.T) {
	self := &PathRef{Steps: []Step{{Axis: AxisSelf}}}
	if !self.IsSelf() || self.IsBareName() {
		t.Fatal("self step misclassified")
	}

	name := &PathRef{Steps: []Step{{Name: "age"}}}
	if !name.IsBareName() || name.IsSelf() {
		t.Fatal("bare name misclassified")
	}

	multi := &PathRef{Steps: []Step{{Name: "a"}, {Name: "b"}}}
	if multi.IsBareName() || multi.IsSelf() {
		t.Fatal("multi-step path misclassified")
	}
}

func TestDump(t *testing.T) {
	tree := &Binary{
		Op:   ">",
		Left: &FuncCall{Name: "count", Args: []Expr{&PathRef{Steps: []Step{{Name: "items"}}}}},
		Right: &Literal{
			Kind:  LitNumber,
			Value: "0",
		},
	}

	got := Dump(tree)
	want := "(>\n  (call count\n    (ref items))\n  (num 0))"
	if got != want {
		t.Fatalf("Dump:\n%s\nwant:\n%s", got, want)
	}
}
