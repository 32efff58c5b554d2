package token_test

import (
	"testing"

	"kiln/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Bang, token.Assign, token.BangEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.AndAnd, token.OrOr,
		token.LParen, token.RParen, token.LBracket, token.RBracket, token.LBrace, token.RBrace,
		token.Comma, token.Colon, token.Dot,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.IntLit, token.Newline, token.EOF} {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestKindStringsAreUnique(t *testing.T) {
	seen := make(map[string]token.Kind)
	for k := token.Invalid; k <= token.Dot; k++ {
		s := k.String()
		if s == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
		if prev, dup := seen[s]; dup {
			t.Fatalf("kinds %d and %d share name %q", prev, k, s)
		}
		seen[s] = k
	}
}

func TestImage(t *testing.T) {
	cases := []struct {
		tok  token.Token
		want string
	}{
		{token.Token{Kind: token.EOF}, "end of file"},
		{token.Token{Kind: token.Newline, Text: "\n"}, "end of line"},
		{token.Token{Kind: token.StringLit, Text: "ab"}, "\"ab\""},
		{token.Token{Kind: token.RParen, Text: ")"}, ")"},
	}
	for _, tt := range cases {
		if got := tt.tok.Image(); got != tt.want {
			t.Errorf("Image(%v) = %q, want %q", tt.tok.Kind, got, tt.want)
		}
	}
}
