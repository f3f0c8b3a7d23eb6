package ast

import (
	"fmt"
	"strings"
)

// Dump renders the tree as an indented s-expression, used by the debug
// `parse` command and in parser tests.
func Dump(e Expr) string {
	var b strings.Builder
	dump(&b, e, 0)
	return b.String()
}

func dump(b *strings.Builder, e Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := e.(type) {
	case *FuncCall:
		fmt.Fprintf(b, "%s(call %s", indent, n.Name)
		if len(n.Args) == 0 {
			b.WriteString(")")
			return
		}
		for _, arg := range n.Args {
			b.WriteString("\n")
			dump(b, arg, depth+1)
		}
		b.WriteString(")")
	case *Binary:
		fmt.Fprintf(b, "%s(%s\n", indent, n.Op)
		dump(b, n.Left, depth+1)
		b.WriteString("\n")
		dump(b, n.Right, depth+1)
		b.WriteString(")")
	case *PathRef:
		parts := make([]string, 0, len(n.Steps))
		for _, s := range n.Steps {
			switch s.Axis {
			case AxisSelf:
				parts = append(parts, ".")
			case AxisParent:
				parts = append(parts, "..")
			case AxisAttribute:
				parts = append(parts, "@"+s.Name)
			default:
				parts = append(parts, s.Name)
			}
		}
		fmt.Fprintf(b, "%s(ref %s)", indent, strings.Join(parts, "/"))
	case *Literal:
		if n.Kind == LitString {
			fmt.Fprintf(b, "%s(str %s)", indent, n.Display)
		} else {
			fmt.Fprintf(b, "%s(num %s)", indent, n.Value)
		}
	default:
		fmt.Fprintf(b, "%s(unknown %T)", indent, e)
	}
}
