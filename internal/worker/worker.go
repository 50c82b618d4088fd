// Package worker hosts the typed-channel seams through which the
// editor's background collaborators — language servers, AI agents,
// debug adapters, git, a PTY, and script plugins — talk to the core
// without ever touching a buffer directly (an "external
// collaborator" boundary). Each subpackage defines its own Request/
// Reply pair and a goroutine that owns the collaborator's actual I/O;
// Supervisor only tracks their lifetimes.
package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Seam is a running background collaborator: a goroutine Supervisor
// waits on and can ask to stop. Each worker subpackage's client type
// satisfies this by wrapping its own run loop.
type Seam interface {
	// Run blocks until ctx is canceled or the collaborator exits on
	// its own (e.g. the child process died); it returns the reason.
	Run(ctx context.Context) error
}

// Supervisor runs a fixed set of Seams under one cancellation scope:
// if any seam's Run returns an error, every other seam is canceled and
// Wait returns the first error, the same all-or-nothing shutdown an
// errgroup.Group gives a fan-out of goroutines that share a context.
type Supervisor struct {
	group *errgroup.Group
	ctx   context.Context
}

// NewSupervisor derives a cancelable context from parent and returns a
// Supervisor ready to take seams via Go.
func NewSupervisor(parent context.Context) (*Supervisor, context.Context) {
	group, ctx := errgroup.WithContext(parent)
	return &Supervisor{group: group, ctx: ctx}, ctx
}

// Go starts seam in its own goroutine under the supervised context.
func (s *Supervisor) Go(seam Seam) {
	s.group.Go(func() error {
		return seam.Run(s.ctx)
	})
}

// Wait blocks until every seam has returned, then returns the first
// non-nil error any of them reported (context.Canceled is swallowed,
// since that's the expected shutdown path when a sibling seam fails
// first or the caller cancels the parent context).
func (s *Supervisor) Wait() error {
	if err := s.group.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
