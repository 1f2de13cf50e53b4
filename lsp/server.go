// Package lsp is a language server for EBNF grammars and JSON documents.
package lsp

import (
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "combo"

var log = commonlog.GetLogger("combo.lsp")

type Server struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewServer(version string) *Server {
	ls := &Server{
		workspace: NewWorkspace(),
		version:   version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

// Workspace returns the documents tracked by the server.
func (ls *Server) Workspace() *Workspace {
	return ls.workspace
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("%s %s ready", lsName, ls.version)
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := ls.workspace.Update(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	log.Debugf("opened %s (%s)", doc.URI, doc.Language)
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		log.Warningf("ignoring incremental change to %s", params.TextDocument.URI)
		return nil
	}
	doc := ls.workspace.Update(params.TextDocument.URI, params.TextDocument.Version, textChange.Text)
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.workspace.Remove(params.TextDocument.URI)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	version := int32(0)
	if old := ls.workspace.Get(params.TextDocument.URI); old != nil {
		version = old.Version
	}
	doc := ls.workspace.Update(params.TextDocument.URI, version, *params.Text)
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := ls.workspace.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return documentSymbols(doc), nil
}

func (ls *Server) publish(ctx *glsp.Context, doc *Document) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: diagnostics(doc),
	})
}

func diagnostics(doc *Document) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, 0, len(doc.Problems))
	source := lsName
	severity := protocol.DiagnosticSeverityError
	for _, p := range doc.Problems {
		start := position(p.Line, p.Column)
		diags = append(diags, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: start},
			Severity: &severity,
			Source:   &source,
			Message:  p.Message,
		})
	}
	return diags
}

func documentSymbols(doc *Document) []protocol.DocumentSymbol {
	symbols := make([]protocol.DocumentSymbol, 0, len(doc.Symbols))
	for _, s := range doc.Symbols {
		kind := protocol.SymbolKindClass
		if s.Lexical {
			kind = protocol.SymbolKindConstant
		}
		start := position(s.Line, s.Column)
		end := protocol.Position{Line: start.Line, Character: start.Character + protocol.UInteger(len(utf16.Encode([]rune(s.Name))))}
		r := protocol.Range{Start: start, End: end}
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           s.Name,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
		})
	}
	return symbols
}

// position converts a 1-based line and column to a protocol position.
// Unknown positions map to the start of the document.
func position(line, column int) protocol.Position {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	return protocol.Position{
		Line:      protocol.UInteger(line - 1),
		Character: protocol.UInteger(column - 1),
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
