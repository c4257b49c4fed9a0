package printer

import (
	"strings"
	"testing"

	"github.com/19wintersp/Facsimile/internal/lexer"
	"github.com/19wintersp/Facsimile/internal/parser"
	"github.com/19wintersp/Facsimile/internal/parser/ast"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()

	tks, err := lexer.New([]byte(src), "test.fax").Collect()
	if err != nil {
		t.Fatalf("failed to lex %q: %s", src, err)
	}

	f, err := parser.Parse(tks)
	if err != nil {
		t.Fatalf("failed to parse %q: %s", src, err)
	}

	return f
}

func render(t *testing.T, src string) string {
	t.Helper()

	var sb strings.Builder
	if err := Visit(&sb, parse(t, src)); err != nil {
		t.Fatalf("failed to print %q: %s", src, err)
	}

	return sb.String()
}

func TestVisit(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			"flat list",
			"( add   1 2.5 )",
			"(add 1 2.5)\n",
		},
		{
			"vector and literals",
			"[true false nil]",
			"[true false nil]\n",
		},
		{
			"map breaks over lines",
			`{width 800 title "demo"}`,
			"{\n\twidth 800\n\ttitle \"demo\"\n}\n",
		},
		{
			"empty map stays flat",
			"{}",
			"{}\n",
		},
		{
			"access chain",
			"window.frame.width",
			"window.frame.width\n",
		},
		{
			"large magnitude stays exponent-free",
			"1e21",
			"1000000000000000000000\n",
		},
		{
			"small magnitude stays exponent-free",
			"0.0000001",
			"0.0000001\n",
		},
		{
			"string escapes",
			`"a\nb\\c"`,
			"\"a\\nb\\\\c\"\n",
		},
		{
			"string with double quotes",
			`'say "hi"'`,
			"'say \"hi\"'\n",
		},
		{
			"comments are elided",
			"/* gone */ 42 // also gone",
			"42\n",
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			got := render(t, c.src)
			if got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	srcs := []string{
		`(window {size [800 600] title "demo"} nil)`,
		`[1 -2.5 2e3 true "tab\there"]`,
		`[1e21 0.0000001 34e37 -2.5e4]`,
		`config.display.mode`,
	}

	for _, src := range srcs {
		first := render(t, src)
		second := render(t, first)

		if first != second {
			t.Fatalf("%q: output is not stable: %q vs %q", src, first, second)
		}
	}
}
