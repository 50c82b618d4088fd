// Package encoding sniffs a freshly-read file's byte encoding well
// enough to decide whether Forge can open it as text at all, and if
// so, how to get it into the UTF-8 the rest of the editor assumes.
package encoding

import (
	"bytes"
	"unicode/utf8"

	xtextenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names a byte encoding Forge can recognize on load.
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF8BOM Encoding = "utf-8-bom"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
	Latin1  Encoding = "iso-8859-1"
	ASCII   Encoding = "ascii"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// maxBinarySniff caps how much of a file BinaryFile inspects; a
// multi-gigabyte log needn't be read in full just to decide it's
// text.
const maxBinarySniff = 8192

// DetectEncoding inspects content's BOM and byte distribution to
// guess its encoding. A BOM wins outright; otherwise valid UTF-8
// (ASCII is a subset) is assumed, falling back to Latin-1, which
// accepts every byte sequence and so never fails a decode.
func DetectEncoding(content []byte) Encoding {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(content, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(content, bomUTF16BE):
		return UTF16BE
	}

	if len(content) == 0 || utf8.Valid(content) {
		if isASCII(content) {
			return ASCII
		}
		return UTF8
	}
	return Latin1
}

func isASCII(content []byte) bool {
	for _, b := range content {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// BinaryFile reports whether content looks like binary data rather
// than text, sniffing at most the first 8KiB: a NUL byte is decisive,
// otherwise more than 10% non-printable control bytes trips it.
func BinaryFile(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	sample := content
	if len(sample) > maxBinarySniff {
		sample = sample[:maxBinarySniff]
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			nonText++
		}
	}
	return float64(nonText)/float64(len(sample)) > 0.1
}

// Decode converts content from enc to UTF-8. UTF8 and ASCII pass
// through unchanged (ASCII is a strict UTF-8 subset); a UTF-8 BOM is
// stripped without a transcode since the bytes after it are already
// UTF-8. UTF-16 and Latin-1 go through golang.org/x/text's
// transform-based decoders, which also consume any BOM of their own.
func Decode(content []byte, enc Encoding) (string, error) {
	switch enc {
	case UTF8, ASCII:
		return string(content), nil
	case UTF8BOM:
		return string(bytes.TrimPrefix(content, bomUTF8)), nil
	case UTF16LE:
		return decodeWith(content, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM))
	case UTF16BE:
		return decodeWith(content, unicode.UTF16(unicode.BigEndian, unicode.UseBOM))
	case Latin1:
		return decodeWith(content, charmap.ISO8859_1)
	default:
		return string(content), nil
	}
}

func decodeWith(content []byte, enc xtextenc.Encoding) (string, error) {
	out, _, err := transform.String(enc.NewDecoder(), string(content))
	if err != nil {
		return "", err
	}
	return out, nil
}
