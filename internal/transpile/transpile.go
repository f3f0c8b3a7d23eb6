// Package transpile maps a dialect AST to Expression Manager syntax.
// Transpile is pure and stateless: same tree and kind, same output.
// It is total over well-formed input — every accepted node yields a
// non-empty fragment, and no subtree is ever silently dropped. Anything
// outside the function and operator tables fails with a classified error.
package transpile

import (
	"emx/internal/ast"
	"emx/internal/ident"
)

// Transpile renders the tree as an EM expression fragment.
func Transpile(node ast.Expr, kind Kind) (string, error) {
	return render(node, kind, 0)
}

// render carries the precedence of the enclosing operator so that
// parentheses survive exactly where EM would otherwise regroup the tree.
func render(node ast.Expr, kind Kind, parentPrec int) (string, error) {
	switch n := node.(type) {
	case *ast.FuncCall:
		return renderCall(n, kind)
	case *ast.Binary:
		return renderBinary(n, kind, parentPrec)
	case *ast.PathRef:
		return renderPathRef(n)
	case *ast.Literal:
		return renderLiteral(n), nil
	default:
		return "", ErrMalformedNode
	}
}

func renderCall(call *ast.FuncCall, kind Kind) (string, error) {
	spec, ok := functionTable[call.Name]
	if !ok {
		return "", unsupportedFunction(call.Name)
	}
	if len(call.Args) < spec.minArity || (spec.maxArity != -1 && len(call.Args) > spec.maxArity) {
		return "", arityMismatch(call.Name, len(call.Args), arityLabel(spec))
	}

	args := make([]string, len(call.Args))
	for i, arg := range call.Args {
		rendered, err := render(arg, kind, 0)
		if err != nil {
			return "", err
		}
		args[i] = rendered
	}
	return spec.render(args), nil
}

func renderBinary(bin *ast.Binary, kind Kind, parentPrec int) (string, error) {
	// Равенство — особый случай: вид зависит от Kind. В расчётах
	// сохраняется присваивание-равенство `=`; в остальных контекстах
	// и "=" и "==" схлопываются в плотную скобочную форму (l==r) —
	// ту же, что выдаёт переписывание selected().
	if bin.Op == "=" || bin.Op == "==" {
		if bin.Op == "=" && kind == KindCalculation {
			return renderSpaced(bin, kind, "=", precCompare, parentPrec)
		}
		left, err := render(bin.Left, kind, 0)
		if err != nil {
			return "", err
		}
		right, err := render(bin.Right, kind, 0)
		if err != nil {
			return "", err
		}
		return "(" + left + "==" + right + ")", nil
	}

	if _, isPath := pathAlgebraOps[bin.Op]; isPath {
		return "", unsupportedOperator(bin.Op)
	}

	spec, ok := operatorTable[bin.Op]
	if !ok {
		return "", unsupportedOperator(bin.Op)
	}
	return renderSpaced(bin, kind, spec.target, spec.prec, parentPrec)
}

func renderSpaced(bin *ast.Binary, kind Kind, target string, prec, parentPrec int) (string, error) {
	left, err := render(bin.Left, kind, prec)
	if err != nil {
		return "", err
	}
	// Правый операнд того же приоритета требует скобок у
	// неассоциативных операторов: a - (b - c).
	right, err := render(bin.Right, kind, prec+1)
	if err != nil {
		return "", err
	}

	out := left + " " + target + " " + right
	if prec < parentPrec {
		out = "(" + out + ")"
	}
	return out, nil
}

func renderPathRef(ref *ast.PathRef) (string, error) {
	if len(ref.Steps) != 1 {
		return "", ErrMalformedNode
	}
	step := ref.Steps[0]
	switch step.Axis {
	case ast.AxisSelf:
		return "self", nil
	case ast.AxisParent:
		return "", unsupportedOperator("..")
	case ast.AxisAttribute:
		return "", unsupportedOperator("@")
	case ast.AxisNone:
		if step.Name == "" {
			return "", ErrMalformedNode
		}
		// Node-test * — path-алгебра, буквальной звёздочке в выводе
		// взяться неоткуда.
		if step.Name == "*" {
			return "", unsupportedOperator("*")
		}
		return ident.Sanitize(step.Name), nil
	default:
		return "", ErrMalformedNode
	}
}

func renderLiteral(lit *ast.Literal) string {
	if lit.Kind == ast.LitString && lit.Display != "" {
		return lit.Display
	}
	return lit.Value
}
