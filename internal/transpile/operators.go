package transpile

// opSpec describes how a dialect binary operator renders in EM syntax.
type opSpec struct {
	target string
	prec   int
}

// Приоритеты зеркалят парсер: скобки вставляются там, где без них
// EM прочитал бы дерево иначе.
const (
	precOr = iota + 1
	precAnd
	precCompare
	precAdditive
	precMultiplicative
)

// operatorTable — поддерживаемые бинарные операторы. Равенство ("=", "==")
// обрабатывается отдельно в renderBinary: его вид зависит от Kind.
var operatorTable = map[string]opSpec{
	"or":  {"or", precOr},
	"and": {"and", precAnd},
	"!=":  {"!=", precCompare},
	"<":   {"<", precCompare},
	"<=":  {"<=", precCompare},
	">":   {">", precCompare},
	">=":  {">=", precCompare},
	"+":   {"+", precAdditive},
	"-":   {"-", precAdditive},
	"*":   {"*", precMultiplicative},
	"div": {"/", precMultiplicative},
	"mod": {"%", precMultiplicative},
}

// pathAlgebraOps — операторы без EM-эквивалента. Они никогда не
// аппроксимируются: всегда ErrUnsupportedOperator.
var pathAlgebraOps = map[string]struct{}{
	"|":  {},
	"/":  {},
	"//": {},
	"[]": {},
	"..": {},
	"@":  {},
	"::": {},
	",":  {},
}
