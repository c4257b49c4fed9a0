package main

import (
	goerrors "errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	ferrors "github.com/19wintersp/Facsimile/errors"
	"github.com/19wintersp/Facsimile/internal/lexer"
	"github.com/19wintersp/Facsimile/internal/workspace"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "facsimile"

var version string = "0.0.1"
var handler protocol.Handler

var documents = map[string]string{}

func main() {
	// This increases logging verbosity (optional)
	commonlog.Configure(1, nil)

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			documents[params.TextDocument.URI] = params.TextDocument.Text

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			content, ok := documents[params.TextDocument.URI]
			if !ok {
				return nil
			}

			for _, change := range params.ContentChanges {
				switch change := change.(type) {
				case protocol.TextDocumentContentChangeEventWhole:
					documents[params.TextDocument.URI] = change.Text

				case protocol.TextDocumentContentChangeEvent:
					startIndex, endIndex := change.Range.IndexesIn(content)
					documents[params.TextDocument.URI] = content[:startIndex] + change.Text + content[endIndex:]
				}
			}

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentSemanticTokensFull: semanticTokensFull,
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

func handleDocument(context *glsp.Context, docURI string) error {
	url, err := url.Parse(docURI)
	if err != nil {
		return fmt.Errorf("parse document uri: %w", err)
	}
	if url.Scheme != "file" {
		return fmt.Errorf("invalid document uri scheme %q", url.Scheme)
	}

	contents, ok := documents[docURI]
	if !ok {
		return nil
	}

	filePath := url.Path
	fileName := filepath.Base(filePath)

	ws := workspace.New(filepath.Dir(url.Path))

	diag := []protocol.Diagnostic{}

	_, err = ws.LoadWithContents(fileName, []byte(contents))
	if err != nil {
		var poserr ferrors.SituatedErr

		if goerrors.As(err, &poserr) {
			diag = append(diag, protocol.Diagnostic{
				Range: protocol.Range{
					Start: pos(poserr.At()),
					End:   pos(poserr.At()),
				},
				Severity: ptr(protocol.DiagnosticSeverityError),
				Message:  poserr.Unwrap().Error(),
			})
		} else {
			diag = append(diag, protocol.Diagnostic{
				Severity: ptr(protocol.DiagnosticSeverityError),
				Message:  err.Error(),
			})
		}
	}

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diag,
	})

	return nil
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes: []string{
				"keyword",
				"string",
				"number",
				"variable",
			},
		},
		Range: false,
		Full:  true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func semanticTokensFull(context *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	content, ok := documents[params.TextDocument.URI]
	if !ok {
		return nil, fmt.Errorf("document %q not found", params.TextDocument.URI)
	}

	return &protocol.SemanticTokens{
		Data: semanticTokens(content, filepath.Base(params.TextDocument.URI)),
	}, nil
}

func semanticTokens(content string, fileName string) []protocol.UInteger {
	l := lexer.New([]byte(content), fileName)
	lines := strings.Split(content, "\n")

	tokens := make([]protocol.UInteger, 0)

	var prevPos lexer.Location
	for {
		tk, err := l.Next()
		if err != nil {
			// Report whatever tokenized cleanly; diagnostics carry the error
			break
		}
		if tk.Type == lexer.TokenEOF {
			break
		}

		var tokenType protocol.UInteger
		shouldSend := true

		switch tk.Type {
		case lexer.TokenBoolean, lexer.TokenNil:
			tokenType = 0

		case lexer.TokenString:
			tokenType = 1

		case lexer.TokenNumber:
			tokenType = 2

		case lexer.TokenSymbol:
			tokenType = 3

		default:
			shouldSend = false
		}

		if shouldSend {
			start := tk.Location.Start
			end := tk.Location.End

			var length int
			if end.Line == start.Line {
				length = end.Column - start.Column + 1
			} else {
				// Semantic tokens cannot span lines; clamp a multi-line
				// literal at the end of its first line.
				length = utf8.RuneCountInString(lines[start.Line]) - start.Column
			}

			var startDelta protocol.UInteger
			if start.Line == prevPos.Line {
				startDelta = uint32(start.Column - prevPos.Column)
			} else {
				startDelta = uint32(start.Column)
			}

			tokens = append(tokens,
				protocol.UInteger(start.Line-prevPos.Line),
				startDelta,
				protocol.UInteger(length),
				tokenType,
				0,
			)

			prevPos = start
		}
	}

	return tokens
}

func ptr[T any](v T) *T {
	return &v
}

func pos(l lexer.Location) protocol.Position {
	return protocol.Position{
		Line:      uint32(l.Line),
		Character: uint32(l.Column),
	}
}
