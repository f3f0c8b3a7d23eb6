package token

import (
	"emx/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsComparison reports whether the token is a comparison operator.
func (t Token) IsComparison() bool {
	switch t.Kind {
	case Eq, EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}

// IsPathAlgebra reports whether the token belongs to XPath path algebra,
// which the target engine cannot express.
func (t Token) IsPathAlgebra() bool {
	switch t.Kind {
	case Pipe, Slash, SlashSlash, DotDot, At, ColonColon, LBracket, RBracket:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a dialect keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwAnd, KwOr, KwDiv, KwMod:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
