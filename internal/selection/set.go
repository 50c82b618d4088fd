package selection

import "sort"

// Selection manages one or more ranges (multi-cursor). Ranges are kept
// sorted by position and non-overlapping; overlapping or touching ranges
// merge into one on every mutation.
//
// Unlike a single sorted list with an implicit "first is primary" rule,
// Selection tracks which range is primary explicitly: the primary is the
// most recently added or moved range, not necessarily the first by
// position. Adding a new range, or clicking to place a new caret, makes
// that range primary; merges carry the primary identity into the merged
// result when the primary participated in the merge.
type Selection struct {
	ranges  []Range
	primary int // index into ranges of the primary range
}

// NewSelection creates a selection with a single range, primary.
func NewSelection(initial Range) *Selection {
	return &Selection{
		ranges:  []Range{initial},
		primary: 0,
	}
}

// NewSelectionAt creates a selection with a single caret at the given offset.
func NewSelectionAt(offset ByteOffset) *Selection {
	return &Selection{
		ranges:  []Range{NewCaret(offset)},
		primary: 0,
	}
}

// NewSelectionFromSlice creates a selection from a slice of ranges. The
// ranges are normalized (sorted and merged); the last range in the input
// slice is treated as primary.
func NewSelectionFromSlice(ranges []Range) *Selection {
	if len(ranges) == 0 {
		return &Selection{ranges: []Range{NewCaret(0)}, primary: 0}
	}
	s := &Selection{
		ranges:  make([]Range, len(ranges)),
		primary: len(ranges) - 1,
	}
	copy(s.ranges, ranges)
	s.normalize()
	return s
}

// Primary returns the primary range.
func (s *Selection) Primary() Range {
	if len(s.ranges) == 0 {
		return Range{}
	}
	return s.ranges[s.primary]
}

// PrimaryCursor returns the head offset of the primary range.
func (s *Selection) PrimaryCursor() ByteOffset {
	return s.Primary().Head
}

// PrimaryIndex returns the index of the primary range within All().
func (s *Selection) PrimaryIndex() int {
	return s.primary
}

// All returns a copy of all ranges, sorted by position.
// The returned slice is safe to modify without affecting the Selection.
func (s *Selection) All() []Range {
	result := make([]Range, len(s.ranges))
	copy(result, s.ranges)
	return result
}

// Count returns the number of ranges.
func (s *Selection) Count() int {
	return len(s.ranges)
}

// IsMulti returns true if there is more than one range.
func (s *Selection) IsMulti() bool {
	return len(s.ranges) > 1
}

// Get returns the range at the given index.
// Returns a zero range if index is out of range.
func (s *Selection) Get(index int) Range {
	if index < 0 || index >= len(s.ranges) {
		return Range{}
	}
	return s.ranges[index]
}

// Add adds a new range, merging with overlapping ones. The added range
// becomes primary.
func (s *Selection) Add(r Range) {
	s.ranges = append(s.ranges, r)
	s.primary = len(s.ranges) - 1
	s.normalizeKeepingPrimary(r.Head)
}

// AddAll adds multiple ranges. The last range added becomes primary.
func (s *Selection) AddAll(rs []Range) {
	if len(rs) == 0 {
		return
	}
	s.ranges = append(s.ranges, rs...)
	last := rs[len(rs)-1]
	s.normalizeKeepingPrimary(last.Head)
}

// SetPrimary replaces the primary range with r, keeping the others, and
// keeps r as primary after renormalizing.
func (s *Selection) SetPrimary(r Range) {
	if len(s.ranges) == 0 {
		s.ranges = []Range{r}
		s.primary = 0
		return
	}
	s.ranges[s.primary] = r
	s.normalizeKeepingPrimary(r.Head)
}

// Set replaces all ranges with a single range, which becomes primary.
func (s *Selection) Set(r Range) {
	s.ranges = []Range{r}
	s.primary = 0
}

// SetAll replaces all ranges. The last range in rs becomes primary.
func (s *Selection) SetAll(rs []Range) {
	if len(rs) == 0 {
		s.ranges = []Range{NewCaret(0)}
		s.primary = 0
		return
	}
	s.ranges = make([]Range, len(rs))
	copy(s.ranges, rs)
	last := rs[len(rs)-1]
	s.normalizeKeepingPrimary(last.Head)
}

// Clear collapses the selection down to the primary range only.
func (s *Selection) Clear() {
	if len(s.ranges) > 1 {
		primary := s.ranges[s.primary]
		s.ranges = []Range{primary}
		s.primary = 0
	}
}

// Remove removes the range at the given index.
// If it's the last range, it's replaced with a caret at position 0.
func (s *Selection) Remove(index int) {
	if index < 0 || index >= len(s.ranges) {
		return
	}
	s.ranges = append(s.ranges[:index], s.ranges[index+1:]...)
	if len(s.ranges) == 0 {
		s.ranges = []Range{NewCaret(0)}
		s.primary = 0
		return
	}
	switch {
	case index < s.primary:
		s.primary--
	case index == s.primary:
		s.primary = len(s.ranges) - 1
	}
}

// RemoveLast removes the most recently added (primary) range and makes the
// last range by position primary.
func (s *Selection) RemoveLast() {
	if len(s.ranges) <= 1 {
		return
	}
	s.Remove(s.primary)
}

// ForEach calls f for each range with its index.
func (s *Selection) ForEach(f func(index int, r Range)) {
	for i, r := range s.ranges {
		f(i, r)
	}
}

// Map applies f to each range and returns the results.
func (s *Selection) Map(f func(r Range) Range) []Range {
	result := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		result[i] = f(r)
	}
	return result
}

// MapInPlace applies f to each range in place.
func (s *Selection) MapInPlace(f func(r Range) Range) {
	primaryHead := s.ranges[s.primary].Head
	for i, r := range s.ranges {
		s.ranges[i] = f(r)
	}
	s.normalizeKeepingPrimary(primaryHead)
}

// HasSelection returns true if any range is non-empty (has extent).
func (s *Selection) HasSelection() bool {
	for _, r := range s.ranges {
		if !r.IsEmpty() {
			return true
		}
	}
	return false
}

// CollapseAll collapses all ranges to carets at their heads.
func (s *Selection) CollapseAll() {
	primaryHead := s.ranges[s.primary].Head
	for i, r := range s.ranges {
		s.ranges[i] = r.Collapse()
	}
	s.normalizeKeepingPrimary(primaryHead)
}

// Clamp clamps all ranges to the valid range [0, maxOffset].
func (s *Selection) Clamp(maxOffset ByteOffset) {
	primaryHead := s.ranges[s.primary].Head
	for i, r := range s.ranges {
		s.ranges[i] = r.Clamp(maxOffset)
	}
	if primaryHead > maxOffset {
		primaryHead = maxOffset
	}
	s.normalizeKeepingPrimary(primaryHead)
}

// Clone returns a deep copy of the selection.
func (s *Selection) Clone() *Selection {
	clone := &Selection{
		ranges:  make([]Range, len(s.ranges)),
		primary: s.primary,
	}
	copy(clone.ranges, s.ranges)
	return clone
}

// Ranges returns all ranges as plain byte spans (for operations like delete).
func (s *Selection) Ranges() []ByteRange {
	ranges := make([]ByteRange, len(s.ranges))
	for i, r := range s.ranges {
		ranges[i] = r.Bytes()
	}
	return ranges
}

// NonEmptyRanges returns byte spans only for ranges that have extent.
func (s *Selection) NonEmptyRanges() []ByteRange {
	var ranges []ByteRange
	for _, r := range s.ranges {
		if !r.IsEmpty() {
			ranges = append(ranges, r.Bytes())
		}
	}
	return ranges
}

// normalize sorts ranges and merges overlapping/touching ones, keeping the
// current primary (located by its head). Used at construction time and by
// TransformSelection.
func (s *Selection) normalize() {
	primaryHead := s.ranges[s.primary].Head
	s.normalizeKeepingPrimary(primaryHead)
}

// normalizeKeepingPrimary sorts and merges ranges, then re-derives the
// primary index by locating the merged range whose span contains
// primaryHead (the head of whichever range was primary before the merge).
// Ties (a degenerate caret at a merge boundary) resolve to the later range.
func (s *Selection) normalizeKeepingPrimary(primaryHead ByteOffset) {
	if len(s.ranges) <= 1 {
		if len(s.ranges) == 1 {
			s.primary = 0
		}
		return
	}

	sort.Slice(s.ranges, func(i, j int) bool {
		si, sj := s.ranges[i].Start(), s.ranges[j].Start()
		if si != sj {
			return si < sj
		}
		return s.ranges[i].End() > s.ranges[j].End()
	})

	merged := s.ranges[:1]
	for _, r := range s.ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start() <= last.End() {
			*last = last.Merge(r)
		} else {
			merged = append(merged, r)
		}
	}
	s.ranges = merged

	s.primary = len(s.ranges) - 1
	for i, r := range s.ranges {
		if primaryHead >= r.Start() && primaryHead <= r.End() {
			s.primary = i
		}
	}
}

// Equals returns true if two selections have the same ranges in the same
// order (primary identity is not compared, only the visible range set).
func (s *Selection) Equals(other *Selection) bool {
	if other == nil {
		return false
	}
	if s.Count() != other.Count() {
		return false
	}
	for i, r := range s.ranges {
		if !r.Equals(other.ranges[i]) {
			return false
		}
	}
	return true
}
