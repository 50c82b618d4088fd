package app

import "github.com/atotto/clipboard"

// Clipboard abstracts system clipboard access so a paste/copy command
// handler never imports atotto/clipboard directly, and a test can
// substitute an in-memory fake.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// SystemClipboard talks to the OS clipboard via atotto/clipboard.
// Every call that fails (headless environment, access denied) is
// turned into a *CoreError with KindClipboardUnavailable rather than
// the raw platform error, so a command handler has one error shape to
// switch on regardless of host OS.
type SystemClipboard struct{}

func (SystemClipboard) Read() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", NewCoreError(KindClipboardUnavailable, "read", err)
	}
	return text, nil
}

func (SystemClipboard) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return NewCoreError(KindClipboardUnavailable, "write", err)
	}
	return nil
}

// MemoryClipboard is an in-process clipboard, used as a fallback when
// SystemClipboard reports KindClipboardUnavailable (a headless CI
// run, a sandboxed container with no clipboard utility installed) so
// copy/paste commands still round-trip within a single session.
type MemoryClipboard struct {
	text string
}

func (m *MemoryClipboard) Read() (string, error) {
	return m.text, nil
}

func (m *MemoryClipboard) Write(text string) error {
	m.text = text
	return nil
}
