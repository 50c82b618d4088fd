// Package lsp is the language-server adapter seam: a typed request/
// reply channel pair between the editor core and an external language
// server process, plus the ad hoc JSON-RPC envelope helpers a thin
// adapter needs without committing to a full typed protocol package.
// The wire protocol itself (spawning the server, framing Content-
// Length headers) is out of scope; this package defines the contract
// a real transport would fulfill.
package lsp

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/forge-editor/forge/internal/decoration"
)

// DocumentURI identifies a buffer the way the language-server protocol
// addresses it.
type DocumentURI string

// RequestKind enumerates the document-sync and query operations the
// core can ask a language server to perform.
type RequestKind int

const (
	RequestDidOpen RequestKind = iota
	RequestDidChange
	RequestDidClose
	RequestHover
	RequestDefinition
	RequestReferences
	RequestCompletion
	RequestDiagnosticsPull
)

// Request is one outbound ask, addressed to a revision so a reply that
// arrives after the buffer has moved on can be dropped by the
// revision-gating rule internal/render.WorkerMessage implements.
type Request struct {
	Kind     RequestKind
	URI      DocumentURI
	Line     uint32
	Col      uint32
	Revision uint64
	Text     string
}

// Reply is a language server's answer, already reduced to the
// decoration/content form the core understands — diagnostics become
// gutter marks and underlines, hovers/completions are left as opaque
// payloads for a higher layer (a hover popup, a completion list) to
// render.
type Reply struct {
	Kind        RequestKind
	URI         DocumentURI
	Revision    uint64
	Decorations []decoration.Decoration
	Payload     string
	Err         error
}

// Client is the seam's handle: Requests is sent to, Replies is read
// from. A real implementation owns a child process and a Transport
// underneath; this package only fixes the contract both sides agree
// on.
type Client struct {
	Requests chan<- Request
	Replies  <-chan Reply
}

// Envelope is the minimal JSON-RPC 2.0 frame shape the adapter needs
// to inspect without a full struct round-trip: just enough to route on
// method/id and patch params, the way gjson/sjson let the lookup stay
// allocation-light on the hot path of draining a server's notification
// stream.
type Envelope struct {
	raw []byte
}

// NewEnvelope wraps a raw JSON-RPC message for field inspection.
func NewEnvelope(raw []byte) Envelope { return Envelope{raw: raw} }

// Method returns the envelope's "method" field, or "" for a response
// frame (which has "id"+"result"/"error" but no "method").
func (e Envelope) Method() string {
	return gjson.GetBytes(e.raw, "method").String()
}

// ID returns the envelope's "id" field and whether it was present
// (notifications omit it).
func (e Envelope) ID() (int64, bool) {
	r := gjson.GetBytes(e.raw, "id")
	if !r.Exists() {
		return 0, false
	}
	return r.Int(), true
}

// IsError reports whether the envelope carries an "error" member.
func (e Envelope) IsError() bool {
	return gjson.GetBytes(e.raw, "error").Exists()
}

// Params returns the raw "params" member.
func (e Envelope) Params() gjson.Result {
	return gjson.GetBytes(e.raw, "params")
}

// WithParamField returns a copy of the envelope with params.<path> set
// to value, without decoding the rest of the message — used to patch a
// single field (e.g. a textDocument.version bump) before forwarding a
// request the adapter otherwise passes through unchanged.
func (e Envelope) WithParamField(path string, value any) (Envelope, error) {
	next, err := sjson.SetBytes(e.raw, "params."+path, value)
	if err != nil {
		return Envelope{}, fmt.Errorf("lsp: set params.%s: %w", path, err)
	}
	return Envelope{raw: next}, nil
}

// Bytes returns the envelope's raw JSON.
func (e Envelope) Bytes() []byte { return e.raw }

// Run satisfies worker.Seam for a Client wrapping a transport the
// caller has already started: a no-op placeholder for an adapter whose
// actual I/O loop lives in its own transport goroutine, so supervision
// only needs to watch ctx for cancellation.
func (c *Client) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}
