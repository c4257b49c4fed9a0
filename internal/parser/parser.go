package parser

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/19wintersp/Facsimile/internal/lexer"
	. "github.com/19wintersp/Facsimile/internal/parser/ast"
	"github.com/19wintersp/Facsimile/internal/symbol"
	"golang.org/x/exp/slices"
)

var (
	ErrLastTokenEOF = errors.New("last token must be EOF")
	ErrOddMapForms  = errors.New("map literal requires an even number of forms")
)

type ParserError struct {
	Inner    error
	Location lexer.Span
}

func (e *ParserError) Unwrap() error {
	return e.Inner
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *ParserError) At() lexer.Location {
	return e.Location.Start
}

type UnexpectedTokenError struct {
	Got      *lexer.Token
	Expected string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Got.Type)
}

var closerTypes = []lexer.TokenType{
	lexer.TokenRightParen,
	lexer.TokenRightBracket,
	lexer.TokenRightBrace,
}

type parser struct {
	tokens []lexer.Token
	index  int

	errs []*ParserError
}

func Parse(tokens []lexer.Token) (*File, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TokenEOF {
		return nil, ErrLastTokenEOF
	}

	p := parser{tokens: tokens}

	f := p.parseFile()
	if len(p.errs) > 0 {
		return nil, p.errs[0]
	}

	return f, nil
}

func (p *parser) take() (tk *lexer.Token) {
	if p.index >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1] // Last token should be EOF
	}

	tk = &p.tokens[p.index]
	p.index++

	return tk
}

func (p *parser) mustTake(typ lexer.TokenType) (tk *lexer.Token, found bool) {
	tk = p.take()
	if tk.Type != typ {
		p.addErrorAt(&UnexpectedTokenError{
			Got:      tk,
			Expected: typ.String(),
		}, tk.Location)
		return nil, false
	}

	return tk, true
}

func (p *parser) peek() *lexer.Token {
	if p.index >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1] // Last token should be EOF
	}

	return &p.tokens[p.index]
}

func (p *parser) isEOF() bool {
	return p.peek().Type == lexer.TokenEOF
}

func (p *parser) addErrorAt(err error, pos lexer.Span) {
	p.errs = append(p.errs, &ParserError{
		Inner:    err,
		Location: pos,
	})
}

func (p *parser) parseFile() *File {
	fname := filepath.Base(p.tokens[0].Location.Start.File)

	f := &File{Name: fname}

	for !p.isEOF() {
		n := p.parseValue()
		if n == nil {
			break
		}

		f.Nodes = append(f.Nodes, n)
	}

	return f
}

func (p *parser) parseValue() Node {
	tk := p.take()

	switch tk.Type {
	case lexer.TokenLeftParen:
		return p.parseList(tk)
	case lexer.TokenLeftBracket:
		return p.parseVector(tk)
	case lexer.TokenLeftBrace:
		return p.parseMap(tk)

	case lexer.TokenSymbol:
		return p.parseSymbol(tk)

	case lexer.TokenNumber:
		return &NodeNumber{Pos: Pos(tk.Location), Value: tk.Number}
	case lexer.TokenString:
		return &NodeString{Pos: Pos(tk.Location), Value: tk.Text}
	case lexer.TokenBoolean:
		return &NodeBoolean{Pos: Pos(tk.Location), Value: tk.Boolean}
	case lexer.TokenNil:
		return &NodeNil{Pos: Pos(tk.Location)}
	}

	p.addErrorAt(&UnexpectedTokenError{
		Got:      tk,
		Expected: "a value",
	}, tk.Location)

	return nil
}

func (p *parser) parseList(open *lexer.Token) Node {
	els, span, ok := p.parseSequence(open, lexer.TokenRightParen)
	if !ok {
		return nil
	}

	return &NodeList{Pos: Pos(span), Elements: els}
}

func (p *parser) parseVector(open *lexer.Token) Node {
	els, span, ok := p.parseSequence(open, lexer.TokenRightBracket)
	if !ok {
		return nil
	}

	return &NodeVector{Pos: Pos(span), Elements: els}
}

func (p *parser) parseMap(open *lexer.Token) Node {
	forms, span, ok := p.parseSequence(open, lexer.TokenRightBrace)
	if !ok {
		return nil
	}

	if len(forms)%2 != 0 {
		p.addErrorAt(ErrOddMapForms, span)
		return nil
	}

	entries := make([]MapEntry, 0, len(forms)/2)
	for i := 0; i < len(forms); i += 2 {
		entries = append(entries, MapEntry{
			Key:   forms[i],
			Value: forms[i+1],
		})
	}

	return &NodeMap{Pos: Pos(span), Entries: entries}
}

// parseSequence collects values until the given closer, which must match
// the opener; any other closer or EOF is an error.
func (p *parser) parseSequence(open *lexer.Token, closer lexer.TokenType) ([]Node, lexer.Span, bool) {
	var els []Node

	for {
		tk := p.peek()

		if tk.Type == closer {
			p.take()

			span := lexer.Span{
				Start: open.Location.Start,
				End:   tk.Location.End,
			}
			return els, span, true
		}

		if tk.Type == lexer.TokenEOF || slices.Contains(closerTypes, tk.Type) {
			p.addErrorAt(&UnexpectedTokenError{
				Got:      tk,
				Expected: fmt.Sprintf("a value or %s", closer),
			}, tk.Location)
			return nil, lexer.Span{}, false
		}

		n := p.parseValue()
		if n == nil {
			return nil, lexer.Span{}, false
		}

		els = append(els, n)
	}
}

func (p *parser) parseSymbol(first *lexer.Token) Node {
	if p.peek().Type != lexer.TokenDot {
		return &NodeSymbol{Pos: Pos(first.Location), Name: first.Symbol}
	}

	path := []symbol.Symbol{first.Symbol}
	end := first.Location.End

	for p.peek().Type == lexer.TokenDot {
		p.take()

		tk, ok := p.mustTake(lexer.TokenSymbol)
		if !ok {
			return nil
		}

		path = append(path, tk.Symbol)
		end = tk.Location.End
	}

	return &NodeAccess{
		Pos:  Pos(lexer.Span{Start: first.Location.Start, End: end}),
		Path: path,
	}
}
