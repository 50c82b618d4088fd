package input

import (
	"fmt"
	"strings"
)

// Sequence is an ordered run of Chords a binding fires on as a unit.
type Sequence []Chord

// Equals reports whether two sequences are the same length and match
// chord-for-chord.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equals(other[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix's chords match the start of s.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := range prefix {
		if !prefix[i].Equals(s[i]) {
			return false
		}
	}
	return true
}

// String joins the sequence the way it's authored in a binding table:
// "g g", "C-x C-s".
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ParseSequence parses a space-separated or Vim-continuous chord
// string ("g g", "diw", "<C-x><C-s>") into a Sequence.
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if strings.Contains(s, " ") {
		fields := strings.Fields(s)
		seq := make(Sequence, 0, len(fields))
		for _, f := range fields {
			c, err := ParseChord(f)
			if err != nil {
				return nil, err
			}
			seq = append(seq, c)
		}
		return seq, nil
	}

	var seq Sequence
	i := 0
	for i < len(s) {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end == -1 {
				return nil, fmt.Errorf("input: unterminated %q in sequence %q", "<...>", s)
			}
			c, err := ParseChord(s[i : i+end+1])
			if err != nil {
				return nil, err
			}
			seq = append(seq, c)
			i += end + 1
			continue
		}
		c, err := ParseChord(string(s[i]))
		if err != nil {
			return nil, err
		}
		seq = append(seq, c)
		i++
	}
	return seq, nil
}

// MustParseSequence parses seq and panics on error. Reserved for
// known-valid literals in default-keymap initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("input: invalid sequence " + s + ": " + err.Error())
	}
	return seq
}
