// Package git is the git seam: a watcher that turns a working-tree
// diff into gutter-mark decorations and a status summary, without the
// core ever shelling out itself. The actual `git` process invocation
// is left to a Runner the host supplies — this package owns the
// diff-to-decoration translation and the polling loop, not process
// plumbing.
package git

import (
	"context"
	"time"

	"github.com/forge-editor/forge/internal/decoration"
)

// StatusCode mirrors a file's position in the working tree.
type StatusCode int

const (
	StatusUnmodified StatusCode = iota
	StatusModified
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusUntracked
	StatusConflict
)

func (s StatusCode) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusUntracked:
		return "untracked"
	case StatusConflict:
		return "conflict"
	default:
		return "unmodified"
	}
}

// FileStatus is one entry of `git status`.
type FileStatus struct {
	Path   string
	Status StatusCode
	Staged bool
}

// HunkKind is the per-line classification a diff hunk line carries.
type HunkKind byte

const (
	HunkContext HunkKind = ' '
	HunkAdded   HunkKind = '+'
	HunkRemoved HunkKind = '-'
)

// Hunk is one contiguous run of changed lines against the file's
// working-tree line numbering.
type Hunk struct {
	NewStart uint32
	NewLines uint32
	Kind     HunkKind
}

// Runner is the process boundary: a host supplies one backed by
// exec.Command("git", ...), a fake for tests, or a libgit2 binding.
// This package never imports os/exec itself.
type Runner interface {
	Status(ctx context.Context) ([]FileStatus, error)
	DiffHunks(ctx context.Context, path string) ([]Hunk, error)
}

// Watcher polls a Runner on an interval and republishes both a status
// summary and, per open file, gutter-mark decorations derived from its
// hunks, over typed reply channels rather than a callback list.
type Watcher struct {
	Statuses chan []FileStatus
	Gutters  chan GutterUpdate

	runner   Runner
	interval time.Duration
	paths    []string
}

// GutterUpdate is one file's hunk-derived decoration layer, keyed by
// path the way internal/render.WorkerMessage's LayerID namespaces a
// collaborator's layers ("git-gutter/<path>").
type GutterUpdate struct {
	Path        string
	Decorations []decoration.Decoration
}

// NewWatcher returns a Watcher polling runner every interval (the
// teacher defaults to one second when given a non-positive interval;
// this package keeps that default).
func NewWatcher(runner Runner, interval time.Duration, watchedPaths ...string) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		Statuses: make(chan []FileStatus, 1),
		Gutters:  make(chan GutterUpdate, len(watchedPaths)+1),
		runner:   runner,
		interval: interval,
		paths:    watchedPaths,
	}
}

// Run polls on Watcher's interval until ctx is canceled, publishing a
// status snapshot and a gutter update per watched path on each tick.
// A channel send that would block is dropped rather than blocking the
// poll loop. While a consumer lags, the values already buffered stay
// and the newer ones are dropped: Statuses holds one snapshot and
// Gutters one update per watched path plus one.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	if statuses, err := w.runner.Status(ctx); err == nil {
		select {
		case w.Statuses <- statuses:
		default:
		}
	}

	for _, path := range w.paths {
		hunks, err := w.runner.DiffHunks(ctx, path)
		if err != nil {
			continue
		}
		update := GutterUpdate{Path: path, Decorations: hunksToDecorations(hunks)}
		select {
		case w.Gutters <- update:
		default:
		}
	}
}

// hunksToDecorations turns a flat hunk list into line-background
// decorations: an added run paints its lines GutterAdded, a removed
// run paints a single marker on the line it collapsed onto, and a
// modified run (an added line immediately following a removed one)
// paints GutterModified instead of stacking both.
func hunksToDecorations(hunks []Hunk) []decoration.Decoration {
	var decs []decoration.Decoration
	for i, h := range hunks {
		switch h.Kind {
		case HunkAdded:
			kind := decoration.GutterAdded
			if i > 0 && hunks[i-1].Kind == HunkRemoved {
				kind = decoration.GutterModified
			}
			for line := h.NewStart; line < h.NewStart+h.NewLines; line++ {
				decs = append(decs, decoration.Decoration{
					Kind: decoration.KindGutterMark, Line: line, GutterKind: kind,
				})
			}
		case HunkRemoved:
			if i+1 < len(hunks) && hunks[i+1].Kind == HunkAdded {
				continue
			}
			decs = append(decs, decoration.Decoration{
				Kind: decoration.KindGutterMark, Line: h.NewStart, GutterKind: decoration.GutterDeleted,
			})
		}
	}
	return decs
}
