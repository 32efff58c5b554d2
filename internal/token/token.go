package token

import (
	"kiln/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Pos  source.Pos
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= Dot
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwLet && t.Kind <= KwFalse
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Image is the text shown in "unexpected ..." messages.
func (t Token) Image() string {
	switch t.Kind {
	case EOF:
		return "end of file"
	case Newline:
		return "end of line"
	case StringLit:
		return "\"" + t.Text + "\""
	}
	return t.Text
}
