package lexer

import (
	"pyfix/internal/diag"
	"pyfix/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg)
	}
}
