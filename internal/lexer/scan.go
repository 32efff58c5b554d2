package lexer

import (
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"kiln/internal/diag"
	"kiln/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	pos := lx.pos(uint32(start))
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Pos: pos, Text: text}
	}
	if token.IsReserved(text) {
		lx.report(diag.ReservedWord{Pos: pos, Token: text})
	}
	return token.Token{Kind: token.Ident, Pos: pos, Text: text}
}

// scanNumber: 12, 1_000, 1.5, 1., .5. Подчёркивания остаются в Text.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	lx.scanDigits()
	if lx.cursor.Peek() == '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.scanDigits()
	}
	return token.Token{Kind: kind, Pos: lx.pos(uint32(start)), Text: lx.cursor.TextFrom(start)}
}

func (lx *Lexer) scanDigits() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

// scanString читает '...' или "..." с escape \n \t \r \\ \' \".
// Незакрытая строка (перевод строки или EOF) сообщается, но токен всё равно
// выдаётся с прочитанным содержимым.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	var sb strings.Builder
	closed := false
loop:
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			closed = true
			break loop
		case '\n':
			break loop
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				break loop
			}
			sb.WriteByte(unescape(lx.cursor.Bump()))
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}
	pos := lx.pos(uint32(start))
	if !closed {
		lx.report(diag.UnterminatedString{Pos: pos})
	}
	text := sb.String()
	if !lx.opts.KeepRawStrings {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.StringLit, Pos: pos, Text: text}
}

func unescape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return b
}

var twoByteOps = map[[2]byte]token.Kind{
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
}

var oneByteOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'!': token.Bang,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	':': token.Colon,
	'.': token.Dot,
}

func (lx *Lexer) scanOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Mark()
	pos := lx.pos(uint32(start))
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if kind, ok := twoByteOps[[2]byte{b0, b1}]; ok {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return token.Token{Kind: kind, Pos: pos, Text: lx.cursor.TextFrom(start)}, true
		}
	}
	if kind, ok := oneByteOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return token.Token{Kind: kind, Pos: pos, Text: lx.cursor.TextFrom(start)}, true
	}
	return token.Token{}, false
}

// invalidChar сообщает о неизвестном символе (целой руне) и пропускает его.
func (lx *Lexer) invalidChar() {
	pos := lx.pos(lx.cursor.Off)
	r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
	if r == utf8.RuneError && size <= 1 {
		r = rune(lx.cursor.Peek())
		size = 1
	}
	lx.cursor.Off += safecast.MustConv[uint32](size)
	lx.report(diag.InvalidChar{Pos: pos, Character: int(r)})
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// Проверка для кейса ".5": текущая точка, дальше цифра?
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}
