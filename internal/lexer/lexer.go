package lexer

import (
	"kiln/internal/diag"
	"kiln/internal/source"
	"kiln/internal/token"
)

type Lexer struct {
	fs        *source.FileSet
	file      *source.File
	cursor    Cursor
	opts      Options
	look      *token.Token // 1 элементный буфер для токена
	lineStart bool         // курсор стоит в начале строки, отступ ещё не разобран
	lineOpen  bool         // на текущей строке уже выдан значимый токен
	done      bool
}

// New creates a lexer over the file id registered in fs.
func New(fs *source.FileSet, id source.FileID, opts Options) *Lexer {
	file := fs.Get(id)
	if file == nil {
		file = &source.File{ID: id}
	}
	return &Lexer{
		fs:        fs,
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		lineStart: true,
	}
}

// Next возвращает следующий значимый токен.
// Каждая непустая строка завершается Newline, даже если в файле нет
// финального перевода строки. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	for {
		if lx.done {
			return token.Token{Kind: token.EOF, Pos: lx.pos(lx.cursor.Limit)}
		}
		if lx.lineStart {
			lx.lineStart = false
			lx.scanIndent()
		}
		lx.skipBlanks()

		if lx.cursor.EOF() {
			if lx.lineOpen {
				lx.lineOpen = false
				return token.Token{Kind: token.Newline, Pos: lx.pos(lx.cursor.Off)}
			}
			lx.done = true
			continue
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == '#':
			lx.skipComment()
			continue
		case ch == '\n':
			off := lx.cursor.Off
			lx.cursor.Bump()
			lx.lineStart = true
			if !lx.lineOpen {
				continue // пустая строка
			}
			lx.lineOpen = false
			return token.Token{Kind: token.Newline, Pos: lx.pos(off), Text: "\n"}
		case isIdentStartByte(ch):
			return lx.open(lx.scanIdentOrKeyword())
		case isDec(ch), ch == '.' && lx.isNumberAfterDot():
			return lx.open(lx.scanNumber())
		case ch == '"' || ch == '\'':
			return lx.open(lx.scanString())
		}
		if tok, ok := lx.scanOperatorOrPunct(); ok {
			return lx.open(tok)
		}
		lx.invalidChar()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize lexes the whole file up to and including EOF.
func Tokenize(fs *source.FileSet, id source.FileID, opts Options) []token.Token {
	lx := New(fs, id, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) open(tok token.Token) token.Token {
	lx.lineOpen = true
	return tok
}

func (lx *Lexer) pos(off uint32) source.Pos {
	return lx.fs.Position(lx.file.ID, off)
}

// scanIndent разбирает ведущие пробелы строки. Пустые строки и строки из
// одного комментария отступом не считаются.
func (lx *Lexer) scanIndent() {
	start := lx.cursor.Off
	spaces, tab := 0, false
scan:
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			spaces++
		case '\t':
			tab = true
		default:
			break scan
		}
		lx.cursor.Bump()
	}
	if b := lx.cursor.Peek(); lx.cursor.EOF() || b == '\n' || b == '#' || b == '\r' {
		return
	}
	pos := lx.pos(start)
	switch {
	case tab:
		lx.report(diag.TabAsIndent{Pos: pos})
	case spaces%4 != 0:
		lx.report(diag.BadIndent{Pos: pos})
	case spaces > 0:
		// в kiln нет вложенных блоков
		lx.report(diag.InvalidIndent{Pos: pos})
	}
}

func (lx *Lexer) skipBlanks() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}
