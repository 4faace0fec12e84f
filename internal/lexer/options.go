package lexer

import (
	"reprint/internal/diag"
	"reprint/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// MaxTokenLen bounds a single token; 0 means no limit.
	MaxTokenLen int
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, lx.file.RangeOf(sp), msg).Emit()
}
