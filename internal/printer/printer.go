// Package printer renders a parsed file back to canonical notation:
// one top-level form per line, maps broken over indented lines, string
// literals re-escaped so that the output lexes to the same tokens.
package printer

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/19wintersp/Facsimile/internal/parser/ast"
)

func Visit(w io.Writer, f *ast.File) error {
	ctx := context{
		w: &outputWriter{
			w: w,
		},
	}

	return ctx.visitFile(f)
}

type context struct {
	w *outputWriter
}

func (c *context) visitFile(f *ast.File) error {
	for _, n := range f.Nodes {
		c.w.writeIndentation()

		err := c.visitNode(n)
		if err != nil {
			return err
		}

		c.w.write("\n")
	}

	return nil
}

func (c *context) visitNode(n ast.Node) error {
	switch n := n.(type) {
	case *ast.NodeList:
		return c.visitSequence("(", ")", n.Elements)

	case *ast.NodeVector:
		return c.visitSequence("[", "]", n.Elements)

	case *ast.NodeMap:
		return c.visitNodeMap(n)

	case *ast.NodeSymbol:
		c.w.write(n.Name.String())

	case *ast.NodeAccess:
		for i, sym := range n.Path {
			if i > 0 {
				c.w.write(".")
			}
			c.w.write(sym.String())
		}

	case *ast.NodeNumber:
		// The notation has no signed-exponent spelling, so 'g' output
		// like 1e+21 would not lex back; 'f' stays exponent-free.
		c.w.write(strconv.FormatFloat(float64(n.Value), 'f', -1, 32))

	case *ast.NodeString:
		c.w.write(quote(n.Value))

	case *ast.NodeBoolean:
		c.w.write(strconv.FormatBool(n.Value))

	case *ast.NodeNil:
		c.w.write("nil")

	default:
		return fmt.Errorf("unknown node type %s", reflect.TypeOf(n).String())
	}

	return nil
}

func (c *context) visitSequence(open, closer string, elements []ast.Node) error {
	c.w.write(open)

	for i, el := range elements {
		if i > 0 {
			c.w.write(" ")
		}

		err := c.visitNode(el)
		if err != nil {
			return err
		}
	}

	c.w.write(closer)
	return nil
}

func (c *context) visitNodeMap(n *ast.NodeMap) error {
	if len(n.Entries) == 0 {
		c.w.write("{}")
		return nil
	}

	c.w.write("{\n")
	c.w.indent(1)

	for _, entry := range n.Entries {
		c.w.writeIndentation()

		if err := c.visitNode(entry.Key); err != nil {
			return err
		}
		c.w.write(" ")
		if err := c.visitNode(entry.Value); err != nil {
			return err
		}

		c.w.write("\n")
	}

	c.w.indent(-1)
	c.w.writeIndentation()
	c.w.write("}")

	return nil
}

// quote renders text as a string literal. There is no escape for the
// quote character itself, so a literal containing double quotes is
// single-quoted, and one containing both kinds encodes the delimiter
// with \xHH.
func quote(text string) string {
	delim := byte('"')
	if strings.ContainsRune(text, '"') && !strings.ContainsRune(text, '\'') {
		delim = '\''
	}

	var sb strings.Builder
	sb.WriteByte(delim)

	for _, r := range text {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		case '\\':
			sb.WriteString(`\\`)
		case rune(delim):
			fmt.Fprintf(&sb, `\x%02X`, r)
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteByte(delim)
	return sb.String()
}
