package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier or function name.
	Ident
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwDiv represents the 'div' keyword (XPath division).
	KwDiv // div
	// KwMod represents the 'mod' keyword (XPath modulo).
	KwMod // mod

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token (either quote style).
	StringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Eq represents the XPath equality operator.
	Eq // =
	// EqEq represents the preprocessed equality operator.
	EqEq // ==
	// BangEq represents the inequality operator.
	BangEq // !=
	// Lt represents the less-than operator.
	Lt // <
	// LtEq represents the less-or-equal operator.
	LtEq // <=
	// Gt represents the greater-than operator.
	Gt // >
	// GtEq represents the greater-or-equal operator.
	GtEq // >=

	// LParen and RParen delimit function calls and groups.
	LParen // (
	RParen // )
	// Comma separates function arguments.
	Comma // ,
	// Dot represents the current-field reference.
	Dot // .

	// Path-algebra tokens. Lexed, parsed, and rejected by the transpiler:
	// none of these have an Expression Manager equivalent.

	// Pipe represents the node-set union operator.
	Pipe // |
	// Slash represents the path-step separator.
	Slash // /
	// SlashSlash represents the descendant-or-self shorthand.
	SlashSlash // //
	// DotDot represents the parent step.
	DotDot // ..
	// At represents the attribute-axis shorthand.
	At // @
	// ColonColon represents an explicit axis separator.
	ColonColon // ::
	// LBracket and RBracket delimit XPath predicates.
	LBracket // [
	RBracket // ]
)

var kindNames = map[Kind]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwAnd:      "and",
	KwOr:       "or",
	KwDiv:      "div",
	KwMod:      "mod",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Eq:         "=",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	LParen:     "(",
	RParen:     ")",
	Comma:      ",",
	Dot:        ".",
	Pipe:       "|",
	Slash:      "/",
	SlashSlash: "//",
	DotDot:     "..",
	At:         "@",
	ColonColon: "::",
	LBracket:   "[",
	RBracket:   "]",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
