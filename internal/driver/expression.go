package driver

import (
	"emx/internal/ast"
	"emx/internal/diag"
	"emx/internal/lexer"
	"emx/internal/parser"
	"emx/internal/preprocess"
	"emx/internal/source"
	"emx/internal/token"
)

// TokenizeResult carries everything the tokenize debug command prints.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// TokenizeExpression токенизирует одно выражение после нормализации
// препроцессором. Собираем все токены до EOF включительно.
func TokenizeExpression(expr string, maxDiagnostics int) *TokenizeResult {
	fileSet := source.NewFileSet()
	normalized := preprocess.Normalize(expr)
	fileID := fileSet.AddVirtual("expr", []byte(normalized))
	file := fileSet.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fileSet,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}

// ParseResult carries the parse debug command's output.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Expr    ast.Expr // nil при ошибке разбора
	Bag     *diag.Bag
}

// ParseExpression parses one expression after preprocessor
// normalization. The AST is nil when parsing failed; the bag explains
// why.
func ParseExpression(expr string, maxDiagnostics int) *ParseResult {
	fileSet := source.NewFileSet()
	normalized := preprocess.Normalize(expr)
	fileID := fileSet.AddVirtual("expr", []byte(normalized))
	file := fileSet.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	node, ok := parser.ParseExpression(lx, parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
	})
	res := &ParseResult{
		FileSet: fileSet,
		File:    file,
		Bag:     bag,
	}
	if ok {
		res.Expr = node
	}
	return res
}
