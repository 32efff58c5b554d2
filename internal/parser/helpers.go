package parser

import (
	"kiln/internal/diag"
	"kiln/internal/token"
)

// advance съедает токен и запоминает его как последний
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.last = tok
	}
	return tok
}

// unexpected сообщает о лишнем токене; конец файла: отдельная диагностика
func (p *Parser) unexpected(tok token.Token) {
	if tok.Kind == token.EOF {
		p.report(diag.UnexpectedEOF{Pos: tok.Pos})
		return
	}
	p.report(diag.UnexpectedToken{Pos: tok.Pos, Image: tok.Image()})
}

func (p *Parser) report(r diag.Record) bool {
	if p.opts.Enough() {
		return false
	}
	p.opts.CurrentErrors++
	if p.opts.Sink != nil {
		p.opts.Sink.Report(r)
	}
	return true
}
