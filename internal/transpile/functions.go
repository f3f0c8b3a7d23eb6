package transpile

import (
	"strconv"
	"strings"
)

// funcSpec describes one dialect function: its arity bounds and how the
// already-transpiled arguments assemble into EM syntax.
type funcSpec struct {
	minArity int
	maxArity int // -1 — вариадик
	render   func(args []string) string
}

func renamed(target string) funcSpec {
	return funcSpec{
		minArity: 1,
		maxArity: 1,
		render: func(args []string) string {
			return target + "(" + args[0] + ")"
		},
	}
}

func renamed2(target string) funcSpec {
	return funcSpec{
		minArity: 2,
		maxArity: 2,
		render: func(args []string) string {
			return target + "(" + strings.Join(args, ", ") + ")"
		},
	}
}

// identity renders the single argument unchanged: string()/number() casts
// are implicit in EM.
var identity = funcSpec{
	minArity: 1,
	maxArity: 1,
	render:   func(args []string) string { return args[0] },
}

var nullary = func(target string) funcSpec {
	return funcSpec{
		minArity: 0,
		maxArity: 0,
		render:   func([]string) string { return target + "()" },
	}
}

// functionTable — отображение функций диалекта в EM-синтаксис.
// Имён вне таблицы не существует: любое другое имя — ErrUnsupportedFunction.
var functionTable = map[string]funcSpec{
	"count":         renamed("count"),
	"floor":         renamed("floor"),
	"ceiling":       renamed("ceil"),
	"round":         renamed("round"),
	"sum":           renamed("sum"),
	"string-length": renamed("strlen"),
	"string":        identity,
	"number":        identity,
	"regex":         renamed2("regexMatch"),
	"contains":      renamed2("contains"),
	"starts-with":   renamed2("startsWith"),
	"ends-with":     renamed2("endsWith"),
	"today":         nullary("today"),
	"now":           nullary("now"),
	"not": {
		minArity: 1,
		maxArity: 1,
		render: func(args []string) string {
			return "!(" + args[0] + ")"
		},
	},
	"if": {
		minArity: 3,
		maxArity: 3,
		render: func(args []string) string {
			return "(" + args[0] + " ? " + args[1] + " : " + args[2] + ")"
		},
	},
	"concat": {
		minArity: 1,
		maxArity: -1,
		render: func(args []string) string {
			return strings.Join(args, " + ")
		},
	},
	"substring": {
		minArity: 2,
		maxArity: 3,
		render: func(args []string) string {
			return "substr(" + strings.Join(args, ", ") + ")"
		},
	},
}

func arityLabel(spec funcSpec) string {
	switch {
	case spec.maxArity == -1:
		return "at least " + strconv.Itoa(spec.minArity)
	case spec.minArity == spec.maxArity:
		return strconv.Itoa(spec.minArity)
	default:
		return strconv.Itoa(spec.minArity) + ".." + strconv.Itoa(spec.maxArity)
	}
}
