// Package symbol owns the identifier type shared by the lexer and parser.
package symbol

import (
	"errors"
	"fmt"
)

var ErrEmpty = errors.New("symbol name is empty")

type InvalidCharError struct {
	Name string
	Char rune
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("symbol %q contains invalid character %q", e.Name, e.Char)
}

// Symbol is a validated identifier. The zero value is not a valid symbol;
// use New to construct one.
type Symbol string

// New validates text against the identifier alphabet: a leading ASCII
// letter or underscore followed by ASCII letters, digits or underscores.
func New(text string) (Symbol, error) {
	if text == "" {
		return "", ErrEmpty
	}

	for i, r := range text {
		if isLetter(r) || r == '_' {
			continue
		}
		if i > 0 && isDigit(r) {
			continue
		}

		return "", &InvalidCharError{Name: text, Char: r}
	}

	return Symbol(text), nil
}

func (s Symbol) String() string {
	return string(s)
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
