// Package lexer turns Facsimile source text into a stream of located
// tokens for the parser.
package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/19wintersp/Facsimile/internal/symbol"
)

type LexerError struct {
	Inner    error
	Location Span
}

func (e *LexerError) Unwrap() error {
	return e.Inner
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *LexerError) At() Location {
	return e.Location.Start
}

type UnexpectedRuneError struct {
	Got rune
}

func (e *UnexpectedRuneError) Error() string {
	return fmt.Sprintf("unexpected %q", e.Got)
}

type InvalidHexError struct {
	Digits string
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("%q is invalid hex", e.Digits)
}

type InvalidCharError struct {
	Value uint32
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("%d is not a valid character", e.Value)
}

type InvalidEscapeError struct {
	Escape rune
}

func (e *InvalidEscapeError) Error() string {
	return fmt.Sprintf("%q is not a valid escape", e.Escape)
}

var (
	ErrInvalidNumber       = errors.New("invalid number literal")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnterminatedEscape  = errors.New("unexpected end whilst parsing escape")
	ErrUnterminatedComment = errors.New("unterminated comment")
	ErrExpectedDelimiter   = errors.New("expected delimiter")
)

type Lexer struct {
	file []byte

	byteIndex int

	// loc tracks the next unconsumed character; current is set by take
	// to the position of the character it just consumed. Scanners read
	// current right after taking the first and last characters of a
	// token to get exact inclusive spans.
	loc     Location
	current Location
}

func New(file []byte, fileName string) *Lexer {
	return &Lexer{
		file:    file,
		loc:     Location{File: fileName},
		current: Location{File: fileName},
	}
}

// Next produces the next token, or an error located at the offending
// input. End of input is reported as a TokenEOF token; requesting more
// tokens after that keeps returning TokenEOF. The cursor is not rewound
// on error, so a caller that keeps going resumes wherever the failed
// scan stopped.
func (l *Lexer) Next() (*Token, error) {
	for {
		for {
			r, eof := l.peek()
			if eof || !isWhitespace(r) {
				break
			}
			l.take()
		}

		r, eof := l.take()
		if eof {
			return &Token{Type: TokenEOF, Location: pointSpan(l.loc)}, nil
		}

		start := l.current
		tk := Token{}

		switch {
		case r == '(':
			tk.Type = TokenLeftParen
		case r == ')':
			tk.Type = TokenRightParen
		case r == '[':
			tk.Type = TokenLeftBracket
		case r == ']':
			tk.Type = TokenRightBracket
		case r == '{':
			tk.Type = TokenLeftBrace
		case r == '}':
			tk.Type = TokenRightBrace
		case r == '.':
			tk.Type = TokenDot

		case isASCIILetter(r) || r == '_':
			if err := l.scanSymbol(r, start, &tk); err != nil {
				return nil, err
			}

		case isASCIIDigit(r) || r == '+' || r == '-':
			if err := l.scanNumber(r, start, &tk); err != nil {
				return nil, err
			}

		case r == '"' || r == '\'':
			if err := l.scanString(r, &tk); err != nil {
				return nil, err
			}

		case r == '/':
			if n, eof := l.peek(); !eof && (n == '/' || n == '*') {
				if err := l.skipComment(); err != nil {
					return nil, err
				}

				// Comments are transparent: go round again from the
				// whitespace skip. Iteration rather than recursion keeps
				// the stack flat across long comment runs.
				continue
			}

			return nil, l.errAt(&UnexpectedRuneError{Got: r}, pointSpan(start))

		default:
			return nil, l.errAt(&UnexpectedRuneError{Got: r}, pointSpan(start))
		}

		tk.Location = Span{Start: start, End: l.current}

		if err := l.checkDelimiter(&tk); err != nil {
			return nil, err
		}

		return &tk, nil
	}
}

// Collect drains the lexer, returning every token up to and including
// TokenEOF.
func (l *Lexer) Collect() ([]Token, error) {
	tks := []Token{}

	for {
		tk, err := l.Next()
		if err != nil {
			return nil, err
		}

		tks = append(tks, *tk)

		if tk.Type == TokenEOF {
			return tks, nil
		}
	}
}

func (l *Lexer) take() (r rune, eof bool) {
	if l.byteIndex >= len(l.file) {
		return 0, true
	}

	r, size := utf8.DecodeRune(l.file[l.byteIndex:])
	l.byteIndex += size

	l.current = l.loc
	l.loc.Index++

	if r == '\n' {
		l.loc.Line++
		l.loc.Column = 0
	} else {
		l.loc.Column++
	}

	return r, false
}

func (l *Lexer) peek() (r rune, eof bool) {
	if l.byteIndex >= len(l.file) {
		return 0, true
	}

	r, _ = utf8.DecodeRune(l.file[l.byteIndex:])
	return r, false
}

func (l *Lexer) takeN(n int) (string, bool) {
	runes := make([]rune, 0, n)

	for i := 0; i < n; i++ {
		r, eof := l.take()
		if eof {
			return "", true
		}

		runes = append(runes, r)
	}

	return string(runes), false
}

func (l *Lexer) errAt(inner error, at Span) error {
	return &LexerError{
		Inner:    inner,
		Location: at,
	}
}

func (l *Lexer) scanSymbol(first rune, start Location, tk *Token) error {
	name := []rune{first}

	for {
		r, eof := l.peek()
		if eof || !(isASCIILetter(r) || isASCIIDigit(r) || r == '_') {
			break
		}

		l.take()
		name = append(name, r)
	}

	switch string(name) {
	case "true":
		tk.Type = TokenBoolean
		tk.Boolean = true
	case "false":
		tk.Type = TokenBoolean
		tk.Boolean = false
	case "nil":
		tk.Type = TokenNil

	default:
		sym, err := symbol.New(string(name))
		if err != nil {
			// The scan above only admits identifier characters, so this
			// is unreachable unless the symbol alphabet shrinks.
			return l.errAt(err, Span{Start: start, End: l.current})
		}

		tk.Type = TokenSymbol
		tk.Symbol = sym
	}

	return nil
}

func (l *Lexer) scanNumber(first rune, start Location, tk *Token) error {
	text := []rune{first}

	for {
		r, eof := l.peek()
		if eof || !(isASCIIDigit(r) || r == '_' || r == '.' || r == 'E' || r == 'e') {
			break
		}

		l.take()
		text = append(text, r)
	}

	// Underscores in the run are handed to ParseFloat as-is; it accepts
	// them only where Go literal syntax would.
	value, err := strconv.ParseFloat(string(text), 32)
	if err != nil {
		return l.errAt(ErrInvalidNumber, Span{Start: start, End: l.current})
	}

	tk.Type = TokenNumber
	tk.Number = float32(value)

	return nil
}

func (l *Lexer) scanString(quote rune, tk *Token) error {
	var text []rune

	for {
		r, eof := l.take()
		if eof {
			return l.errAt(ErrUnterminatedString, pointSpan(l.current))
		}

		if r == quote {
			break
		}

		if r != '\\' {
			text = append(text, r)
			continue
		}

		before := l.current

		e, eof := l.take()
		if eof {
			return l.errAt(ErrUnterminatedEscape, pointSpan(l.current))
		}

		switch e {
		case 'n':
			text = append(text, '\n')
		case 'r':
			text = append(text, '\r')
		case 't':
			text = append(text, '\t')
		case '0':
			text = append(text, 0)
		case '\\':
			text = append(text, '\\')

		case 'x', 'u', 'U':
			r, err := l.scanHexEscape(e, before)
			if err != nil {
				return err
			}

			text = append(text, r)

		default:
			return l.errAt(&InvalidEscapeError{Escape: e}, Span{Start: before, End: l.current})
		}
	}

	tk.Type = TokenString
	tk.Text = string(text)

	return nil
}

func (l *Lexer) scanHexEscape(kind rune, before Location) (rune, error) {
	var width, bits int

	switch kind {
	case 'x':
		width, bits = 2, 8
	case 'u':
		width, bits = 4, 16
	case 'U':
		width, bits = 8, 32
	}

	hex, eof := l.takeN(width)
	if eof {
		return 0, l.errAt(ErrUnterminatedEscape, pointSpan(l.current))
	}

	value, err := strconv.ParseUint(hex, 16, bits)
	if err != nil {
		return 0, l.errAt(&InvalidHexError{Digits: hex}, Span{Start: before, End: l.current})
	}

	// \xHH maps the byte value directly onto the code point of equal
	// value; it is not UTF-8 decoded, so \xE9 is U+00E9.
	if kind != 'x' && !utf8.ValidRune(rune(value)) {
		return 0, l.errAt(&InvalidCharError{Value: uint32(value)}, Span{Start: before, End: l.current})
	}

	return rune(value), nil
}

func (l *Lexer) skipComment() error {
	r, _ := l.take()

	if r == '/' {
		for {
			r, eof := l.take()
			if eof || r == '\n' {
				return nil
			}
		}
	}

	// Block form. Only the immediately preceding character matters, so
	// a run like **/ still closes the comment.
	expectEnd := false

	for {
		r, eof := l.take()
		if eof {
			return l.errAt(ErrUnterminatedComment, pointSpan(l.current))
		}

		switch r {
		case '*':
			expectEnd = true
		case '/':
			if expectEnd {
				return nil
			}
		default:
			expectEnd = false
		}
	}
}

// checkDelimiter rejects runs like 123abc or "foo"bar: every token other
// than the openers and Dot must be followed by whitespace, a closer or
// end of input. A dot straight after a symbol is allowed so that member
// access chains need no spacing.
func (l *Lexer) checkDelimiter(tk *Token) error {
	switch tk.Type {
	case TokenLeftParen, TokenLeftBracket, TokenLeftBrace, TokenDot:
		return nil
	}

	r, eof := l.peek()
	if eof {
		return nil
	}

	if tk.Type == TokenSymbol && r == '.' {
		return nil
	}

	if isWhitespace(r) || r == ')' || r == ']' || r == '}' {
		return nil
	}

	return l.errAt(ErrExpectedDelimiter, pointSpan(l.loc))
}

func isASCIILetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}
