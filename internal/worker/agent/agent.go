// Package agent is the AI agent adapter seam: a provider-selectable
// client (Anthropic, OpenAI, or Gemini, chosen by config, "Provider
// selection... configured externally") that turns a
// prompt request into a reply the core treats as opaque text, never as
// something it parses back into buffer edits itself — an agent's
// suggestion becomes a command only via the same resolved-Command path
// anything else reaches the buffer through.
package agent

import (
	"context"
	"fmt"
)

// ProviderKind selects which backend a Client talks to.
type ProviderKind int

const (
	ProviderAnthropic ProviderKind = iota
	ProviderOpenAI
	ProviderGemini
)

// ParseProviderKind maps a config string ("anthropic", "openai",
// "gemini") to a ProviderKind, matching the spelling
// internal/config's AI section accepts.
func ParseProviderKind(s string) (ProviderKind, error) {
	switch s {
	case "anthropic":
		return ProviderAnthropic, nil
	case "openai":
		return ProviderOpenAI, nil
	case "gemini", "google":
		return ProviderGemini, nil
	default:
		return 0, fmt.Errorf("agent: unknown provider %q", s)
	}
}

// Request is one prompt turn, addressed to a buffer revision the same
// way internal/worker/lsp requests are, so a reply about a file the
// user has since edited away from can be discarded.
type Request struct {
	Prompt      string
	URI         string
	Revision    uint64
	MaxTokens   int
	Temperature float64
}

// Reply is a completed turn's result.
type Reply struct {
	Revision uint64
	Text     string
	Err      error
}

// Provider is the narrow interface each SDK backend implements;
// Client dispatches to whichever one config selected without the rest
// of the editor ever importing an SDK package directly.
type Provider interface {
	Complete(ctx context.Context, req Request) (Reply, error)
}

// Client owns the seam's channel pair and the selected Provider.
type Client struct {
	Requests chan Request
	Replies  chan Reply

	provider Provider
}

// NewClient returns a Client dispatching to provider, with a modestly
// buffered request/reply pair so a burst of keystrokes that each
// trigger an inline-suggestion request doesn't block the render loop.
func NewClient(provider Provider) *Client {
	return &Client{
		Requests: make(chan Request, 8),
		Replies:  make(chan Reply, 8),
		provider: provider,
	}
}

// Run drains Requests, calls the provider, and publishes each Reply,
// one in flight at a time — an agent backend is a rate-limited remote
// API, not a fan-out target.
func (c *Client) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-c.Requests:
			if !ok {
				return nil
			}
			reply, err := c.provider.Complete(ctx, req)
			if err != nil {
				reply = Reply{Revision: req.Revision, Err: err}
			}
			select {
			case c.Replies <- reply:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
