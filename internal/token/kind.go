package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a statement.
	Newline

	// Ident represents an identifier token.
	Ident
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwExtern represents the 'extern' keyword.
	KwExtern // extern
	// KwTypeof represents the 'typeof' prefix operator.
	KwTypeof // typeof
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token.
	StringLit

	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	Bang     // !
	Assign   // = (равенство внутри выражений)
	BangEq   // !=
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=
	AndAnd   // &&
	OrOr     // ||
	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
	Comma    // ,
	Colon    // :
	Dot      // .
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Newline:   "Newline",
	Ident:     "Ident",
	KwLet:     "KwLet",
	KwExtern:  "KwExtern",
	KwTypeof:  "KwTypeof",
	KwTrue:    "KwTrue",
	KwFalse:   "KwFalse",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Percent:   "Percent",
	Bang:      "Bang",
	Assign:    "Assign",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	AndAnd:    "AndAnd",
	OrOr:      "OrOr",
	LParen:    "LParen",
	RParen:    "RParen",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	Comma:     "Comma",
	Colon:     "Colon",
	Dot:       "Dot",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
