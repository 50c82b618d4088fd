package render

import (
	"context"
	"time"
)

// ErrQuit is returned by RunOnce (via a "app.quit"-named Commander
// error, by convention) to signal Run's caller that the loop should
// stop. Driver itself never inspects command names; a Commander that
// wants to quit returns this sentinel from Apply.
var ErrQuit = quitError{}

type quitError struct{}

func (quitError) Error() string { return "quit requested" }

// drainWorkerMessages consumes every currently-queued WorkerMessage
// without blocking, applying each as a layer replacement. A message
// whose Revision no longer matches the driver's current revision is
// dropped: the core accepts a reply iff its revision equals the
// current revision (for position-addressed replies). Line-addressed
// layer updates (the common case — most
// decorations are line-addressed and survive reflow) are accepted
// regardless of revision, since WorkerMessage.Revision 0 is reserved
// to mean "line-addressed, always accept."
func (d *Driver) drainWorkerMessages() {
	for {
		select {
		case msg, ok := <-d.WorkerInbox:
			if !ok {
				return
			}
			if msg.Revision != 0 && msg.Revision != d.revision {
				continue
			}
			d.Store.SetLayer(msg.LayerID, msg.Decorations)
		default:
			return
		}
	}
}

// drainCommands consumes every currently-queued Command without
// blocking, applying each via Commander. Every command whose Apply
// call reports a content change bumps the revision; the first
// error (including ErrQuit) stops the drain and is returned to the
// caller.
func (d *Driver) drainCommands() error {
	for {
		select {
		case cmd, ok := <-d.CommandInbox:
			if !ok {
				return nil
			}
			changed, err := d.Commander.Apply(cmd)
			if err != nil {
				return err
			}
			if changed {
				d.bumpRevision()
			}
		default:
			return nil
		}
	}
}

// RunOnce executes exactly one pass of the seven-phase frame loop:
//
//  1. drain input         — handled by the caller's event polling,
//     which turns backend.Event into Commands on CommandInbox before
//     calling RunOnce; Driver itself is backend-event-agnostic so it
//     can be driven by tests without a real Backend event stream.
//  2. drain worker messages
//  3. apply commands
//  4. incremental reparse
//  5. viewport computation (FrameSource.VisibleLines)
//  6. recompute decorations + emit primitives (FrameSource.BuildFrame)
//  7. present
//
// It returns ErrQuit (or any error a Commander/Reparser surfaced) to
// tell the caller to stop calling RunOnce.
func (d *Driver) RunOnce(ctx context.Context) error {
	d.drainWorkerMessages()

	if err := d.drainCommands(); err != nil {
		return err
	}

	if d.Syntax != nil {
		if err := d.Syntax.Reparse(ctx); err != nil {
			return err
		}
	}

	visible := d.Source.VisibleLines()
	decorations := d.Store.QueryRange(visible.Start, visible.End)

	d.Pools.Reset()
	frame := d.Source.BuildFrame(d.Pools, visible, decorations)

	d.Backend.Present(frame)
	return nil
}

// Run is the cooperative loop itself: it wakes on a ticker every
// AnimationTick (or defaultPollInterval when AnimationTick is not
// set) and runs one RunOnce pass per tick, whether or not anything is
// queued. It returns when ctx is canceled or RunOnce returns an error
// (ErrQuit on normal shutdown).
//
// Run never reads the inboxes itself; RunOnce's drain loops consume
// every queued command and worker message, and are no-ops when both
// inboxes are empty.
func (d *Driver) Run(ctx context.Context) error {
	interval := d.AnimationTick
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := d.RunOnce(ctx); err != nil {
			return err
		}
	}
}

// defaultPollInterval is how often Run wakes to drain the inboxes when
// the caller hasn't configured an animation tick (e.g. no cursor blink
// in the active UI mode). It bounds worst-case input latency, not
// frame cadence — an embedding application that drives frames directly
// from the windowing system's callback should call RunOnce itself
// instead of using Run.
const defaultPollInterval = 8 * time.Millisecond
