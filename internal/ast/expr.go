// Package ast defines the expression tree of the XLSForm dialect. The
// upstream grammar distinguishes node shapes by which field is present;
// here each shape is an explicit variant of a sealed sum type, so a
// missed case in a type switch is caught by the exhaustive default arm
// instead of silently producing an empty rendering.
package ast

import (
	"emx/internal/source"
)

// Expr is the sealed interface implemented by all dialect nodes.
type Expr interface {
	Span() source.Span
	isExpr()
}

// FuncCall is a dialect function invocation: selected(a, b), count(x), not(c).
type FuncCall struct {
	Name     string
	NameSpan source.Span
	Args     []Expr
	Sp       source.Span
}

// Binary is an infix operation. Op is the dialect spelling of the operator
// token ("=", "!=", "and", "div", ...).
type Binary struct {
	Op     string
	OpSpan source.Span
	Left   Expr
	Right  Expr
	Sp     source.Span
}

// Axis discriminates path steps.
type Axis uint8

const (
	// AxisNone marks a named step (a plain field reference).
	AxisNone Axis = iota
	// AxisSelf marks the current-field step (".").
	AxisSelf
	// AxisParent marks the parent step ("..") — parsed, never transpiled.
	AxisParent
	// AxisAttribute marks an attribute step ("@name") — parsed, never transpiled.
	AxisAttribute
)

// Step is one component of a path reference.
type Step struct {
	Name string
	Axis Axis
	Sp   source.Span
}

// PathRef is a field reference: a bare name, the current field ".", or a
// multi-step XPath path (which downstream rejects).
type PathRef struct {
	Steps []Step
	Sp    source.Span
}

// LiteralKind discriminates literal values.
type LiteralKind uint8

const (
	// LitNumber is an integer or decimal literal.
	LitNumber LiteralKind = iota
	// LitString is a quoted string literal.
	LitString
)

// Literal is a number or string. Value holds the bare content; Display,
// when non-empty, holds the original quoted form so the transpiler can
// preserve the source quote character.
type Literal struct {
	Kind    LiteralKind
	Value   string
	Display string
	Sp      source.Span
}

func (e *FuncCall) Span() source.Span { return e.Sp }
func (e *Binary) Span() source.Span   { return e.Sp }
func (e *PathRef) Span() source.Span  { return e.Sp }
func (e *Literal) Span() source.Span  { return e.Sp }

func (*FuncCall) isExpr() {}
func (*Binary) isExpr()   {}
func (*PathRef) isExpr()  {}
func (*Literal) isExpr()  {}

// IsSelf reports whether the reference is exactly the current-field step.
func (e *PathRef) IsSelf() bool {
	return len(e.Steps) == 1 && e.Steps[0].Axis == AxisSelf
}

// IsBareName reports whether the reference is a single named step.
func (e *PathRef) IsBareName() bool {
	return len(e.Steps) == 1 && e.Steps[0].Axis == AxisNone
}
