// Package render drives the single-threaded cooperative frame loop
// that ties buffer, selection, syntax, decoration, and layout together
// and presents the result through an internal/gpu Backend. Every frame
// runs seven ordered phases: drain input, drain worker messages,
// apply commands, incremental reparse, recompute decorations, compute
// the visible primitive streams, and present.
package render

import (
	"context"
	"time"

	"github.com/forge-editor/forge/internal/decoration"
	"github.com/forge-editor/forge/internal/gpu"
	"github.com/forge-editor/forge/internal/layout"
)

// Command is one resolved editor command ready to apply against
// buffer/selection/panel state (internal/input's resolver produces
// these; internal/render never interprets key chords itself).
type Command struct {
	Name string
	Args map[string]any
}

// WorkerMessage is a decoration/content update delivered by a
// background collaborator (LSP, agent, git, PTY, file indexer).
// Revision lets Driver discard stale replies against its cancellation
// rule.
type WorkerMessage struct {
	LayerID     string
	Decorations []decoration.Decoration
	Revision    uint64
}

// LineRange is a half-open [Start, End) range of visible line numbers.
type LineRange struct {
	Start, End uint32
}

// Commander applies a resolved Command to whatever owns buffer/
// selection/panel state, reporting whether content changed (which
// bumps the Driver's revision; phase 4 reparses every frame either
// way) and recomputing
// any dependent decoration layers (selection, active-line,
// bracket-match) before returning.
type Commander interface {
	Apply(cmd Command) (changed bool, err error)
}

// Reparser drives the incremental syntax pass for the range that
// changed. Implementations own their own internal/syntax.Document and
// publish updated highlight/fold/outline state as a side effect.
type Reparser interface {
	Reparse(ctx context.Context) error
}

// FrameSource supplies everything phase 5/6 need to turn "what's
// currently true" into primitive streams: the visible line range and
// a render of that range into Rects/GlyphRuns plus the caret position.
type FrameSource interface {
	VisibleLines() LineRange
	BuildFrame(pools *gpu.FramePools, visible LineRange, decorations []decoration.LayerResult) gpu.Frame
}

// Driver owns one frame loop: a backend, the decoration store every
// worker message and dependent-layer recompute feeds, the pre-
// allocated primitive pools, and the current revision counter used to
// drop stale worker replies.
type Driver struct {
	Backend   gpu.Backend
	Store     *decoration.Store
	Pools     *gpu.FramePools
	Mode      layout.Mode
	Flags     layout.PanelFlags
	Commander Commander
	Syntax    Reparser
	Source    FrameSource

	// AnimationTick, when positive, is the interval Run wakes at even
	// with no pending command/worker message, for cursor blink and
	// other time-driven decoration changes. Zero disables blink-driven
	// wake-ups but Run still polls at defaultPollInterval for input.
	AnimationTick time.Duration

	revision uint64

	// WorkerInbox and CommandInbox are the non-blocking channel pair
	// drained at the top of each frame:
	// WorkerInbox carries decoration/content updates from background
	// collaborators, CommandInbox carries resolved commands from
	// internal/input.
	WorkerInbox  <-chan WorkerMessage
	CommandInbox <-chan Command
}

// Revision returns the buffer revision the driver is currently on.
// Worker requests are expected to be issued against this value and to
// carry it back in their reply so RunOnce (phase 2) can discard a
// reply whose revision no longer matches a position-addressed update.
func (d *Driver) Revision() uint64 {
	return d.revision
}

// bumpRevision advances the revision counter after an applied command
// changes buffer content, so the change is visible on the next frame
// under the same revision-ordering guarantee WorkerMessage relies on.
func (d *Driver) bumpRevision() {
	d.revision++
}
