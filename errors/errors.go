package errors

import "github.com/19wintersp/Facsimile/internal/lexer"

// SituatedErr is implemented by lexer and parser errors that know where
// in the source they occurred.
type SituatedErr interface {
	Unwrap() error
	At() lexer.Location
}
