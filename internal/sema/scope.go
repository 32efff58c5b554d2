package sema

import (
	"kiln/internal/ast"
	"kiln/internal/source"
)

type bindingKind uint8

const (
	bindingLet bindingKind = iota
	bindingExtern
)

// binding: имя верхнего уровня файла
type binding struct {
	kind  bindingKind
	name  string
	pos   source.Pos
	value ast.ExprID // bindingLet
}

// scope is the single file-level scope. Names become visible after their
// statement; order remembers first definitions for stable reporting.
type scope struct {
	names map[string]*binding
	// позиции всех будущих определений, собранные предварительным проходом
	later map[string]source.Pos
	order []string
}

func newScope() *scope {
	return &scope{
		names: make(map[string]*binding),
		later: make(map[string]source.Pos),
	}
}

// announce records a definition found by the pre-pass; the first one wins.
func (s *scope) announce(name string, pos source.Pos) {
	if _, ok := s.later[name]; ok {
		return
	}
	s.later[name] = pos
	s.order = append(s.order, name)
}

// declare makes b visible. It returns the previous binding when the name
// is already taken; the previous binding stays in effect.
func (s *scope) declare(b *binding) (*binding, bool) {
	if prev, ok := s.names[b.name]; ok {
		return prev, false
	}
	s.names[b.name] = b
	return b, true
}

func (s *scope) lookup(name string) (*binding, bool) {
	b, ok := s.names[name]
	return b, ok
}
