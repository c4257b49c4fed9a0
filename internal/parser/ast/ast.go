package ast

import (
	"github.com/19wintersp/Facsimile/internal/lexer"
	"github.com/19wintersp/Facsimile/internal/symbol"
)

type Pos lexer.Span

func (p Pos) Position() lexer.Span {
	return lexer.Span(p)
}

type File struct {
	Name  string
	Nodes []Node
}

type Node interface {
	Position() lexer.Span
}

type NodeList struct {
	Pos

	Elements []Node
}

type NodeVector struct {
	Pos

	Elements []Node
}

type NodeMap struct {
	Pos

	Entries []MapEntry
}

type MapEntry struct {
	Key, Value Node
}

type NodeSymbol struct {
	Pos

	Name symbol.Symbol
}

// NodeAccess is a member access chain such as foo.bar.baz; Path always
// holds at least two symbols.
type NodeAccess struct {
	Pos

	Path []symbol.Symbol
}

type NodeNumber struct {
	Pos

	Value float32
}

type NodeString struct {
	Pos

	Value string
}

type NodeBoolean struct {
	Pos

	Value bool
}

type NodeNil struct {
	Pos
}
