package symbol

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	for _, name := range []string{"a", "foo", "_", "_bar", "x9", "CamelCase"} {
		sym, err := New(name)
		if err != nil {
			t.Fatalf("%q: unexpected error: %s", name, err)
		}
		if sym.String() != name {
			t.Fatalf("%q: got %q back", name, sym)
		}
	}
}

func TestNewEmpty(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestNewInvalid(t *testing.T) {
	cases := []struct {
		name string
		char rune
	}{
		{"9lives", '9'}, // digits cannot lead
		{"foo-bar", '-'},
		{"a.b", '.'},
		{"tschüss", 'ü'},
		{"with space", ' '},
	}

	for _, c := range cases {
		_, err := New(c.name)

		var ierr *InvalidCharError
		if !errors.As(err, &ierr) {
			t.Fatalf("%q: expected an invalid-char error, got %v", c.name, err)
		}
		if ierr.Char != c.char {
			t.Fatalf("%q: expected offending char %q, got %q", c.name, c.char, ierr.Char)
		}
	}
}
