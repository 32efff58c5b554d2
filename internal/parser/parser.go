package parser

import (
	"slices"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/lexer"
	"kiln/internal/token"
)

type Options struct {
	Sink          diag.Sink
	MaxErrors     uint
	CurrentErrors uint
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx     *lexer.Lexer // поток токенов (Peek/Next)
	arenas *ast.Builder // построитель аренных узлов
	file   ast.FileID   // текущий FileID (в AST)
	opts   Options
	last   token.Token // последний съеденный токен для лучшей диагностики
}

// ParseFile: входная точка для разбора одного файла.
// Statements that fail to parse are reported and skipped up to the end of
// their line; the rest of the file is still parsed.
func ParseFile(path string, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:     lx,
		arenas: arenas,
		file:   arenas.NewFile(path),
		opts:   opts,
	}
	p.parseStmts()
	return Result{
		File:   p.file,
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseStmts - основной цикл, parseStmt до EOF.
func (p *Parser) parseStmts() {
	for !p.at(token.EOF) {
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncLine()
			continue
		}
		p.arenas.PushStmt(p.file, stmt)
	}
}

// parseStmt выбирает по первому токену: let, extern или выражение.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwExtern:
		return p.parseExtern()
	}
	start := p.lx.Peek()
	value, ok := p.parseExpr()
	if !ok || !p.expectEndOfStmt() {
		return ast.Stmt{}, false
	}
	return ast.Stmt{Kind: ast.StmtExpr, Pos: start.Pos, Value: value}, true
}

// let NAME = EXPR
func (p *Parser) parseLet() (ast.Stmt, bool) {
	letTok := p.advance()
	name, ok := p.parseName()
	if !ok {
		return ast.Stmt{}, false
	}
	if !p.at(token.Assign) {
		p.unexpected(p.lx.Peek())
		return ast.Stmt{}, false
	}
	p.advance()
	value, ok := p.parseExpr()
	if !ok || !p.expectEndOfStmt() {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind:    ast.StmtLet,
		Pos:     letTok.Pos,
		Name:    name.Text,
		NamePos: name.Pos,
		Value:   value,
	}, true
}

// extern NAME
func (p *Parser) parseExtern() (ast.Stmt, bool) {
	externTok := p.advance()
	name, ok := p.parseName()
	if !ok || !p.expectEndOfStmt() {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind:    ast.StmtExtern,
		Pos:     externTok.Pos,
		Name:    name.Text,
		NamePos: name.Pos,
	}, true
}

// parseName ожидает Ident, иначе InvalidName.
func (p *Parser) parseName() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	tok := p.lx.Peek()
	if tok.Kind == token.EOF {
		p.report(diag.UnexpectedEOF{Pos: tok.Pos})
	} else {
		p.report(diag.InvalidName{Pos: tok.Pos})
	}
	return token.Token{}, false
}

func (p *Parser) expectEndOfStmt() bool {
	if p.atOr(token.Newline, token.EOF) {
		if p.at(token.Newline) {
			p.advance()
		}
		return true
	}
	p.unexpected(p.lx.Peek())
	return false
}

// resyncLine пропускает токены до конца строки включительно.
func (p *Parser) resyncLine() {
	for !p.atOr(token.Newline, token.EOF) {
		p.advance()
	}
	if p.at(token.Newline) {
		p.advance()
	}
}
