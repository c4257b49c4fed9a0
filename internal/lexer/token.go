package lexer

import (
	"fmt"

	"github.com/19wintersp/Facsimile/internal/symbol"
)

type TokenType int

const (
	TokenLeftParen TokenType = iota
	TokenRightParen
	TokenLeftBracket
	TokenRightBracket
	TokenLeftBrace
	TokenRightBrace
	TokenDot

	TokenSymbol
	TokenNumber
	TokenString
	TokenBoolean
	TokenNil

	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenLeftParen:
		return "Left parenthesis"
	case TokenRightParen:
		return "Right parenthesis"
	case TokenLeftBracket:
		return "Left bracket"
	case TokenRightBracket:
		return "Right bracket"
	case TokenLeftBrace:
		return "Left brace"
	case TokenRightBrace:
		return "Right brace"
	case TokenDot:
		return "Dot"

	case TokenSymbol:
		return "Symbol"
	case TokenNumber:
		return "Number"
	case TokenString:
		return "String"
	case TokenBoolean:
		return "Boolean"
	case TokenNil:
		return "Nil"

	case TokenEOF:
		return "EOF"
	}

	return "<unknown>"
}

// Token is one classified unit of input. At most one of the payload
// fields is meaningful, selected by Type; punctuation carries none.
type Token struct {
	Type     TokenType
	Location Span

	Symbol  symbol.Symbol
	Number  float32
	Text    string
	Boolean bool
}

type Location struct {
	File string

	// Index counts characters consumed since the start of the input.
	Index int

	// 0-based
	Line, Column int
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line+1, l.Column+1)
}

// Span is an inclusive range covering the first and last character
// consumed to produce a token or locate an error.
type Span struct {
	Start, End Location
}

func (s *Span) String() string {
	if s.Start == s.End {
		return s.Start.String()
	}

	return fmt.Sprintf("%s-%d:%d", &s.Start, s.End.Line+1, s.End.Column+1)
}

func pointSpan(l Location) Span {
	return Span{Start: l, End: l}
}
