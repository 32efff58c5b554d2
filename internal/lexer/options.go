package lexer

import (
	"kiln/internal/diag"
)

type Options struct {
	Sink diag.Sink // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// KeepRawStrings disables NFC normalisation of string literals.
	KeepRawStrings bool
}

func (lx *Lexer) report(r diag.Record) {
	if lx.opts.Sink != nil {
		lx.opts.Sink.Report(r)
	}
}
