package main

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func assertData(t *testing.T, got, want []protocol.UInteger) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSemanticTokens(t *testing.T) {
	// (deltaLine, deltaStart, length, tokenType, modifiers) per token
	data := semanticTokens(`(add 1 "two")`, "test.fax")

	assertData(t, data, []protocol.UInteger{
		0, 1, 3, 3, 0, // add
		0, 4, 1, 2, 0, // 1
		0, 2, 5, 1, 0, // "two"
	})
}

func TestSemanticTokensMultiLineString(t *testing.T) {
	// A string literal spanning lines must not carry its full rune count
	// into the length slot; the token stops at the end of its first line.
	data := semanticTokens("\"one\ntwo\" tail", "test.fax")

	assertData(t, data, []protocol.UInteger{
		0, 0, 4, 1, 0, // "one
		1, 5, 4, 3, 0, // tail
	})
}
