package input

import (
	"time"

	"github.com/forge-editor/forge/internal/gpu"
)

// DefaultChordTimeout is how long Resolver waits for a continuation
// chord before discarding a pending prefix ("g" waiting for a second
// "g") and starting over from the new chord.
const DefaultChordTimeout = 600 * time.Millisecond

// Outcome describes what Feed did with an event.
type Outcome int

const (
	// NoMatch means the chord didn't continue or start any binding;
	// the pending buffer (if any) was cleared.
	NoMatch Outcome = iota
	// Pending means the chord extended a prefix shared by one or more
	// bindings, but no complete match yet — the resolver is waiting
	// for the next chord.
	Pending
	// Matched means a complete binding fired; Command is populated.
	Matched
)

// Resolver turns a stream of backend key events into resolved
// Commands by matching accumulated chords against a layered stack of
// Keymaps (most recently added = highest precedence on a tie).
type Resolver struct {
	keymaps []*Keymap
	pending Sequence
	last    time.Time
	timeout time.Duration

	now func() time.Time
}

// NewResolver returns a Resolver with DefaultChordTimeout and the
// given keymaps in precedence order (later entries win ties).
func NewResolver(keymaps ...*Keymap) *Resolver {
	return &Resolver{
		keymaps: keymaps,
		timeout: DefaultChordTimeout,
		now:     time.Now,
	}
}

// Use registers an additional keymap, taking precedence over ones
// already registered on a tie (e.g. a plugin's keymap layered over the
// defaults).
func (r *Resolver) Use(k *Keymap) {
	r.keymaps = append(r.keymaps, k)
}

// SetTimeout overrides DefaultChordTimeout.
func (r *Resolver) SetTimeout(d time.Duration) {
	r.timeout = d
}

// Reset discards any pending prefix, e.g. on mode change or Escape.
func (r *Resolver) Reset() {
	r.pending = nil
}

// Feed consumes one key event against ctx. It returns the outcome and,
// when Outcome is Matched, the resolved Command.
func (r *Resolver) Feed(ev gpu.Event, ctx Context) (Outcome, Command) {
	now := r.now()
	if len(r.pending) > 0 && r.timeout > 0 && now.Sub(r.last) > r.timeout {
		r.pending = nil
	}
	r.last = now

	r.pending = append(r.pending, FromEvent(ev))

	match, isPrefix := r.bestMatch(ctx)
	switch {
	case match != nil:
		r.pending = nil
		return Matched, Command{Name: match.Command, Args: match.Args}
	case isPrefix:
		return Pending, Command{}
	default:
		r.pending = nil
		return NoMatch, Command{}
	}
}

// bestMatch scans every applicable keymap's bindings for an exact
// match of the pending sequence and, separately, whether any binding
// has the pending sequence as a proper prefix. An exact match always
// wins over reporting a prefix, even if other longer bindings also
// share the prefix, because spec semantics resolve the shortest
// complete chord first.
//
// Among exact matches, the combo grammar's rule is "last matching
// binding wins": r.keymaps and each keymap's Bindings are walked in
// registration order, and a tying or higher score takes the later
// one, so a keymap added via Use (e.g. a plugin's or a user's keymap
// layered over the defaults) overrides an earlier-registered one
// bound to the same chord unless the earlier one set an explicit
// higher Priority.
func (r *Resolver) bestMatch(ctx Context) (*Binding, bool) {
	var best *Binding
	bestScore := -1
	isPrefix := false

	for _, km := range r.keymaps {
		if !km.applies(ctx) {
			continue
		}
		for i := range km.Bindings {
			b := &km.Bindings[i]
			if b.Sequence.Equals(r.pending) {
				if !evaluateWhen(b.When, ctx) {
					continue
				}
				score := km.score(*b)
				if score >= bestScore {
					best = b
					bestScore = score
				}
				continue
			}
			if b.Sequence.HasPrefix(r.pending) && len(b.Sequence) > len(r.pending) {
				if evaluateWhen(b.When, ctx) {
					isPrefix = true
				}
			}
		}
	}
	return best, isPrefix
}
