package app

import (
	"context"

	"github.com/forge-editor/forge/internal/gpu"
	"github.com/forge-editor/forge/internal/input"
	"github.com/forge-editor/forge/internal/render"
)

// inputPump polls a Backend's event stream and feeds it through a
// Resolver, forwarding every fully-resolved command onto out. It owns
// no buffer/selection state itself: resolution is the only thing
// standing between a raw key event and a render.Command.
type inputPump struct {
	backend  gpu.Backend
	resolver *input.Resolver
	context  func() input.Context
	out      chan<- render.Command
}

func newInputPump(backend gpu.Backend, resolver *input.Resolver, contextFn func() input.Context, out chan<- render.Command) *inputPump {
	return &inputPump{backend: backend, resolver: resolver, context: contextFn, out: out}
}

// Run implements worker.Seam: PollEvent blocks until the backend has
// something, so this loop parks rather than busy-waiting; it exits
// once ctx is canceled.
func (p *inputPump) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ev := p.backend.PollEvent()
		if ev.Type == gpu.EventNone {
			continue
		}
		outcome, cmd := p.resolver.Feed(ev, p.context())
		if outcome != input.Matched {
			continue
		}
		select {
		case p.out <- render.Command{Name: cmd.Name, Args: cmd.Args}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
