// Command glyph-lsp is a minimal Language Server Protocol server that
// parses open Glyph documents and publishes parser diagnostics.
package main

import (
	"os"
	"unicode/utf8"

	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/glyph-lang/glyph/internal/lexer"
	"github.com/glyph-lang/glyph/syntax"
)

const lsName = "glyph-lsp"

var version = "0.1.0"

type lspServer struct {
	handler protocol.Handler
	server  *server.Server
}

func newLSPServer() *lspServer {
	ls := &lspServer{}
	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}
	ls.server = server.NewServer(&ls.handler, lsName, false)
	return ls
}

func (ls *lspServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(true)},
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (ls *lspServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *lspServer) shutdown(ctx *glsp.Context) error { return nil }

func (ls *lspServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *lspServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.publishDiagnostics(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *lspServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.publishDiagnostics(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *lspServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.publishDiagnostics(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

// publishDiagnostics parses text and sends one protocol.Diagnostic per
// parser Diagnostic. Byte offsets are converted to UTF-16 line/character
// positions the way every other field in this handler already assumes
// glsp's protocol types want.
func (ls *lspServer) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	result, err := syntax.Parse(lexer.New(text))
	if err != nil {
		return
	}

	diags := make([]protocol.Diagnostic, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		severity := protocol.DiagnosticSeverityError
		diags = append(diags, protocol.Diagnostic{
			Range:    byteRangeToLSPRange(text, d.FirstByte, d.LastByte),
			Severity: &severity,
			Source:   strPtr(lsName),
			Message:  d.Message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// byteRangeToLSPRange converts a 1-based inclusive byte range into a
// zero-based line/character protocol.Range.
func byteRangeToLSPRange(text string, first, last int) protocol.Range {
	if last < first {
		last = first
	}
	startLine, startChar := lineChar(text, first-1)
	endLine, endChar := lineChar(text, last)
	return protocol.Range{
		Start: protocol.Position{Line: uint32(startLine), Character: uint32(startChar)},
		End:   protocol.Position{Line: uint32(endLine), Character: uint32(endChar)},
	}
}

func lineChar(text string, byteOffset int) (line, char int) {
	if byteOffset > len(text) {
		byteOffset = len(text)
	}
	for i := 0; i < byteOffset; {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == '\n':
			line++
			char = 0
		case r >= 0x10000:
			char += 2 // a surrogate pair in UTF-16
		default:
			char++
		}
		i += size
	}
	return line, char
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }
func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }

func main() {
	ls := newLSPServer()
	if err := ls.server.RunStdio(); err != nil {
		os.Exit(1)
	}
}
