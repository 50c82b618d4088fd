package app

import (
	"errors"
	"testing"
)

func TestMemoryClipboardRoundTrip(t *testing.T) {
	var clip MemoryClipboard

	if got, err := clip.Read(); err != nil || got != "" {
		t.Fatalf("Read() on empty clipboard = (%q, %v), want (\"\", nil)", got, err)
	}

	if err := clip.Write("hello"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := clip.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "hello" {
		t.Fatalf("Read() = %q, want %q", got, "hello")
	}
}

func TestMemoryClipboardOverwrite(t *testing.T) {
	var clip MemoryClipboard
	clip.Write("first")
	clip.Write("second")

	got, _ := clip.Read()
	if got != "second" {
		t.Fatalf("Read() = %q, want %q", got, "second")
	}
}

func TestSystemClipboardFailureWrapsCoreError(t *testing.T) {
	var clip SystemClipboard
	if err := clip.Write("probe"); err != nil {
		var coreErr *CoreError
		if !errors.As(err, &coreErr) {
			t.Fatalf("expected a *CoreError, got %T: %v", err, err)
		}
		if coreErr.Kind != KindClipboardUnavailable {
			t.Fatalf("Kind = %v, want %v", coreErr.Kind, KindClipboardUnavailable)
		}
	}
}
