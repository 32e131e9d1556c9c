package lsp

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.mdhtml.dev/pkg/tt"
)

const testURI = lsp.DocumentURI("file:///notes.md")

type clientHandler struct {
	diags chan lsp.PublishDiagnosticsParams
}

func (h clientHandler) Handle(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Method != "textDocument/publishDiagnostics" || req.Params == nil {
		return
	}
	var params lsp.PublishDiagnosticsParams
	if json.Unmarshal(*req.Params, &params) == nil {
		h.diags <- params
	}
}

// setup connects a client to a new server and returns the client connection
// and a channel of published diagnostics.
func setup(t *testing.T) (*jsonrpc2.Conn, <-chan lsp.PublishDiagnosticsParams) {
	t.Helper()
	ctx := context.Background()
	serverSide, clientSide := net.Pipe()
	serverConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{}),
		handler(newServer()))
	diags := make(chan lsp.PublishDiagnosticsParams, 10)
	clientConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		clientHandler{diags})
	t.Cleanup(func() {
		clientConn.Close()
		serverConn.Close()
	})
	return clientConn, diags
}

func open(t *testing.T, conn *jsonrpc2.Conn, text string) {
	t.Helper()
	err := conn.Notify(context.Background(), "textDocument/didOpen",
		lsp.DidOpenTextDocumentParams{
			TextDocument: lsp.TextDocumentItem{URI: testURI, LanguageID: "markdown", Text: text}})
	if err != nil {
		t.Fatal(err)
	}
}

func receive(t *testing.T, diags <-chan lsp.PublishDiagnosticsParams) lsp.PublishDiagnosticsParams {
	t.Helper()
	select {
	case params := <-diags:
		return params
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
		panic("unreachable")
	}
}

func TestInitialize(t *testing.T) {
	conn, _ := setup(t)
	var result lsp.InitializeResult
	err := conn.Call(context.Background(), "initialize", lsp.InitializeParams{}, &result)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Capabilities.HoverProvider {
		t.Errorf("server does not advertise hover support")
	}
}

func TestDiagnostics(t *testing.T) {
	conn, diags := setup(t)

	open(t, conn, "ok\n**x\n")
	want := lsp.PublishDiagnosticsParams{
		URI: testURI,
		Diagnostics: []lsp.Diagnostic{{
			Range: lsp.Range{
				Start: lsp.Position{Line: 1, Character: 0},
				End:   lsp.Position{Line: 1, Character: 2}},
			Severity: lsp.Error,
			Source:   "parse",
			Message:  `unclosed "**" (attempted bold_italic, bold)`,
		}},
	}
	if diff := cmp.Diff(want, receive(t, diags)); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	err := conn.Notify(context.Background(), "textDocument/didChange",
		lsp.DidChangeTextDocumentParams{
			TextDocument: lsp.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
			ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "ok **x**\n"}},
		})
	if err != nil {
		t.Fatal(err)
	}
	if got := receive(t, diags); len(got.Diagnostics) != 0 {
		t.Errorf("got diagnostics %v for valid text", got.Diagnostics)
	}
}

func TestHover(t *testing.T) {
	conn, diags := setup(t)
	open(t, conn, "Some **bold**\n")
	receive(t, diags)

	var hover lsp.Hover
	err := conn.Call(context.Background(), "textDocument/hover",
		lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: 0, Character: 7}},
		&hover)
	if err != nil {
		t.Fatal(err)
	}
	if len(hover.Contents) != 1 {
		t.Fatalf("got %d hover contents, want 1", len(hover.Contents))
	}
	wantChain := "document > block > paragraph > paragraph_line > line_content > bold > char"
	if got := hover.Contents[0].Value; got != wantChain {
		t.Errorf("got hover %q, want %q", got, wantChain)
	}
	wantRange := &lsp.Range{
		Start: lsp.Position{Line: 0, Character: 7},
		End:   lsp.Position{Line: 0, Character: 8}}
	if diff := cmp.Diff(wantRange, hover.Range); diff != "" {
		t.Errorf("hover range (-want +got):\n%s", diff)
	}
}

func TestUnknownMethod(t *testing.T) {
	conn, _ := setup(t)
	err := conn.Call(context.Background(), "textDocument/frobnicate", nil, nil)
	if rpcErr, ok := err.(*jsonrpc2.Error); !ok || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("got error %v, want method not found", err)
	}
}

func TestPositionConversion(t *testing.T) {
	// "a\r\nb" followed by a character outside the BMP and "c".
	s := "a\r\nb\U0001F600c"
	tt.Test(t, tt.Fn("lspPositionFromIdx", lspPositionFromIdx), tt.Table{
		tt.Args(s, 0).Rets(lsp.Position{Line: 0, Character: 0}),
		tt.Args(s, 3).Rets(lsp.Position{Line: 1, Character: 0}),
		tt.Args(s, 4).Rets(lsp.Position{Line: 1, Character: 1}),
		tt.Args(s, 8).Rets(lsp.Position{Line: 1, Character: 3}),
	})
	tt.Test(t, tt.Fn("lspPositionToIdx", lspPositionToIdx), tt.Table{
		tt.Args(s, lsp.Position{Line: 1, Character: 0}).Rets(3),
		tt.Args(s, lsp.Position{Line: 1, Character: 3}).Rets(8),
	})
}
