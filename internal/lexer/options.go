package lexer

import (
	"emx/internal/diag"
	"emx/internal/source"
)

type Options struct {
	// Reporter может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
