package token

var keywords = map[string]Kind{
	"let":    KwLet,
	"extern": KwExtern,
	"typeof": KwTypeof,
	"true":   KwTrue,
	"false":  KwFalse,
}

// Слова, зарезервированные языком, но не поддерживаемые в kiln.
// Лексер сообщает о них и отдаёт как Ident.
var reserved = map[string]struct{}{
	"if": {}, "else": {}, "ifnot": {}, "for": {}, "break": {}, "continue": {},
	"try": {}, "catch": {}, "throw": {}, "func": {}, "return": {}, "class": {},
	"super": {}, "ctor": {}, "export": {}, "enum": {}, "include": {},
	"from": {}, "delete": {}, "elif": {}, "while": {}, "gen": {}, "yield": {},
	"with": {}, "finally": {}, "switch": {}, "case": {},
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsReserved reports whether ident is reserved for future use.
func IsReserved(ident string) bool {
	_, ok := reserved[ident]
	return ok
}
