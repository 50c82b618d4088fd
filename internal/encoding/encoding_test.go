package encoding

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    Encoding
	}{
		{"empty", []byte{}, ASCII},
		{"ascii", []byte("Hello, World!"), ASCII},
		{"utf-8 multibyte", []byte("Hello, 世界!"), UTF8},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "Hello"...), UTF8BOM},
		{"utf-16 le bom", []byte{0xFF, 0xFE, 0x48, 0x00}, UTF16LE},
		{"utf-16 be bom", []byte{0xFE, 0xFF, 0x00, 0x48}, UTF16BE},
		{"invalid utf-8 falls back to latin-1", []byte{0x80, 0x90, 0xA0}, Latin1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectEncoding(tt.content); got != tt.want {
				t.Errorf("DetectEncoding(%v) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestBinaryFile(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"empty", nil, false},
		{"plain text", []byte("package main\n\nfunc main() {}\n"), false},
		{"nul byte", []byte("abc\x00def"), true},
		{"many control bytes", bytes.Repeat([]byte{0x01, 0x02, 0x03}, 20), true},
		{"tabs and newlines are not control bytes", []byte("a\tb\nc\r\n"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BinaryFile(tt.content); got != tt.want {
				t.Errorf("BinaryFile(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestDecodeUTF8Passthrough(t *testing.T) {
	text := "Hello, 世界!"
	got, err := Decode([]byte(text), UTF8)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != text {
		t.Errorf("expected passthrough %q, got %q", text, got)
	}
}

func TestDecodeStripsUTF8BOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, "Hello"...)
	got, err := Decode(content, UTF8BOM)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "Hello" {
		t.Errorf("expected BOM stripped, got %q", got)
	}
}

func TestDecodeLatin1(t *testing.T) {
	// 0xE9 in Latin-1 is U+00E9 (é).
	got, err := Decode([]byte{'c', 0xE9}, Latin1)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "cé" {
		t.Errorf("expected %q, got %q", "cé", got)
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	// "Hi" as UTF-16LE code units, no BOM handling needed beyond what
	// unicode.UseBOM tolerates when one is absent.
	content := []byte{0x48, 0x00, 0x69, 0x00}
	got, err := Decode(content, UTF16LE)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "Hi" {
		t.Errorf("expected %q, got %q", "Hi", got)
	}
}

func TestDecodeRoundTripsThroughDetect(t *testing.T) {
	original := "line one\nligne deux\n"
	enc := DetectEncoding([]byte(original))
	got, err := Decode([]byte(original), enc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !strings.Contains(got, "line one") {
		t.Errorf("round trip lost content: %q", got)
	}
}
