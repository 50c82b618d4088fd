// Package app wires the lower layers (buffer, render, input, worker,
// config) into one running process: logging, the clipboard handle,
// the notification queue, recovery snapshots, and top-level lifecycle.
package app

import (
	"errors"
	"fmt"
)

// Sentinel application errors.
var (
	// ErrQuit signals that the application should exit normally. It is
	// a separate value from internal/render.ErrQuit, which is the one Run
	// checks the frame loop's result against.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates Run was called while already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates Shutdown was called before Run.
	ErrNotRunning = errors.New("application not running")
)

// ErrorKind enumerates the taxonomy every error flowing through the
// frame boundary collapses into, independent of which layer raised
// it.
type ErrorKind int

const (
	KindIndexOutOfRange ErrorKind = iota
	KindEncoding
	KindBinaryFile
	KindIO
	KindTransactionInvalid
	KindWorkerUnavailable
	KindWorkerStaleReply
	KindClipboardUnavailable
	KindConfigParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindIndexOutOfRange:
		return "index-out-of-range"
	case KindEncoding:
		return "encoding-error"
	case KindBinaryFile:
		return "binary-file"
	case KindIO:
		return "io"
	case KindTransactionInvalid:
		return "transaction-invalid"
	case KindWorkerUnavailable:
		return "worker-unavailable"
	case KindWorkerStaleReply:
		return "worker-stale-reply"
	case KindClipboardUnavailable:
		return "clipboard-unavailable"
	case KindConfigParse:
		return "config-parse"
	default:
		return "unknown"
	}
}

// CoreError is the one structured error type every subsystem wraps
// its failures in before handing them to the frame-boundary policy:
// IndexOutOfRange/EncodingError/BinaryFile/Io/WorkerUnavailable/
// ClipboardUnavailable become a user-visible notification,
// WorkerStaleReply is silently discarded by its caller (it never
// reaches here), ParseFailed is not an error at all, and
// TransactionInvalid indicates a bug rather than user-facing failure.
type CoreError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *CoreError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *CoreError) Unwrap() error { return e.Err }

// NewCoreError builds a CoreError, the constructor every call site
// uses rather than building the struct literal inline.
func NewCoreError(kind ErrorKind, detail string, err error) *CoreError {
	return &CoreError{Kind: kind, Detail: detail, Err: err}
}

// Notifiable reports whether a CoreError's kind produces a
// user-visible toast as opposed to a debug-only log entry.
func (k ErrorKind) Notifiable() bool {
	switch k {
	case KindTransactionInvalid, KindWorkerStaleReply:
		return false
	default:
		return true
	}
}
