package transpile

import (
	"errors"
	"fmt"
)

// Classified transpile failures. Every error the package returns wraps
// exactly one of these sentinels, so the conversion boundary can map it
// to a diagnostic code with errors.Is.
var (
	// ErrUnsupportedFunction — имя функции отсутствует в таблице.
	ErrUnsupportedFunction = errors.New("unsupported function")
	// ErrArityMismatch — функция известна, но число аргументов не сходится.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrUnsupportedOperator — path-алгебра и прочие операторы без EM-эквивалента.
	ErrUnsupportedOperator = errors.New("unsupported operator")
	// ErrMalformedNode — узел не принадлежит ни одной форме диалекта.
	ErrMalformedNode = errors.New("malformed node")
)

func unsupportedFunction(name string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFunction, name)
}

func arityMismatch(name string, got int, want string) error {
	return fmt.Errorf("%w: %s takes %s arguments, got %d", ErrArityMismatch, name, want, got)
}

func unsupportedOperator(op string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedOperator, op)
}
