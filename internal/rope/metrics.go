package rope

import "unicode/utf8"

// ByteOffset is an absolute byte position within a Rope.
type ByteOffset uint64

// Point is a 0-indexed line/column position.
type Point struct {
	Line   uint32
	Column uint32
}

// TextSummary is the monoid value carried by every node of the tree:
// aggregated metrics over a span of text that can be combined with
// Add without re-scanning the underlying bytes.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes ByteOffset

	// UTF16Units is the UTF-16 code unit count, needed for editors
	// that exchange positions with UTF-16-based protocols.
	UTF16Units uint64

	// Lines is the number of newline bytes.
	Lines uint32

	// LongestLine is the byte length of the longest line.
	LongestLine uint32

	// FirstLineLen is the byte length of the first line, excluding its newline.
	FirstLineLen uint32

	// LastLineLen is the byte length of the last line, excluding its newline.
	LastLineLen uint32

	Flags contentFlags
}

// contentFlags record coarse properties of a span of text so callers
// can skip expensive per-rune work on common-case content.
type contentFlags uint8

const (
	// FlagASCII is set when every rune in the span is below 128.
	FlagASCII contentFlags = 1 << iota

	// FlagHasNewlines is set when the span contains at least one newline.
	FlagHasNewlines

	// FlagHasTabs is set when the span contains at least one tab.
	FlagHasTabs
)

// Add combines two adjacent summaries into the summary of their
// concatenation.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes:      s.Bytes + other.Bytes,
		UTF16Units: s.UTF16Units + other.UTF16Units,
		Lines:      s.Lines + other.Lines,
		Flags:      s.Flags & other.Flags,
	}

	if other.Lines > 0 {
		result.LongestLine = max(s.LongestLine, other.LongestLine)
		result.FirstLineLen = s.FirstLineLen
		result.LastLineLen = other.LastLineLen
	} else {
		joined := s.LastLineLen + other.LastLineLen
		result.LongestLine = max(s.LongestLine, joined)
		if s.Lines == 0 {
			result.FirstLineLen = joined
		} else {
			result.FirstLineLen = s.FirstLineLen
		}
		result.LastLineLen = joined
	}

	if s.Flags&FlagHasNewlines != 0 || other.Flags&FlagHasNewlines != 0 {
		result.Flags |= FlagHasNewlines
	}
	if s.Flags&FlagHasTabs != 0 || other.Flags&FlagHasTabs != 0 {
		result.Flags |= FlagHasTabs
	}

	return result
}

// Zero returns the identity element of the summary monoid.
func (TextSummary) Zero() TextSummary {
	return TextSummary{Flags: FlagASCII}
}

// IsZero reports whether s is the identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary scans s once and returns its aggregate metrics.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return TextSummary{Flags: FlagASCII}
	}

	var sum TextSummary
	sum.Bytes = ByteOffset(len(s))
	sum.Flags = FlagASCII

	var lineLen uint32

	for _, r := range s {
		if r <= 0xFFFF {
			sum.UTF16Units++
		} else {
			sum.UTF16Units += 2
		}

		if r > 127 {
			sum.Flags &^= FlagASCII
		}

		if r == '\n' {
			sum.Lines++
			if lineLen > sum.LongestLine {
				sum.LongestLine = lineLen
			}
			if sum.Lines == 1 {
				sum.FirstLineLen = lineLen
			}
			lineLen = 0
			sum.Flags |= FlagHasNewlines
		} else {
			lineLen += uint32(utf8.RuneLen(r))
			if r == '\t' {
				sum.Flags |= FlagHasTabs
			}
		}
	}

	sum.LastLineLen = lineLen
	if sum.Lines == 0 {
		sum.FirstLineLen = lineLen
		sum.LongestLine = lineLen
	} else if lineLen > sum.LongestLine {
		sum.LongestLine = lineLen
	}

	return sum
}

// CountLines returns the number of newline bytes in s.
func CountLines(s string) uint32 {
	var count uint32
	for _, c := range s {
		if c == '\n' {
			count++
		}
	}
	return count
}

// FindNthNewline returns the byte offset of the nth newline in s
// (1-indexed), or -1 if s has fewer than n newlines.
func FindNthNewline(s string, n uint32) int {
	if n == 0 {
		return -1
	}

	var count uint32
	for i, c := range s {
		if c == '\n' {
			count++
			if count == n {
				return i
			}
		}
	}
	return -1
}

// OffsetToLineColumn converts a byte offset within s to a Point,
// scanning from the start of the string.
func OffsetToLineColumn(s string, offset int) Point {
	if offset <= 0 {
		return Point{Line: 0, Column: 0}
	}
	if offset >= len(s) {
		offset = len(s)
	}

	var line uint32
	lastNewline := -1

	for i, c := range s[:offset] {
		if c == '\n' {
			line++
			lastNewline = i
		}
	}

	return Point{
		Line:   line,
		Column: uint32(offset - lastNewline - 1),
	}
}
