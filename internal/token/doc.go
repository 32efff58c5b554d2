// Package token defines lexical token kinds for kiln sources.
// Invariants:
//   - Token.Text is the source image of the token; for string literals it is the
//     unescaped, NFC-normalised content without quotes.
//   - Token.Pos points at the first byte of the token.
//   - Every logical line ends with a Newline token; the stream ends with EOF.
//   - Reserved words are lexed as Ident; the lexer reports them separately.
package token
