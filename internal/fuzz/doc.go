// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the whole folding pipeline (source -> lexer -> parser -> sema and
// folder) to guard against panics, hangs and folded nodes without a type.
//
// Назначение: запускать fuzz-обработчики над FileSet, лексером, парсером и
// свёрткой констант.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
