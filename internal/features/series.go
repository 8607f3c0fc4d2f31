package features

import (
	"iter"
	"slices"
)

// Series maps each key to the 0-based positions where it occurs, ascending.
// TotalCounts is the length of the token sequence.
type Series struct {
	extractor string
	entries   map[Key][]int
	total     int
}

func NewSeries(extractorID string, entries map[Key][]int, total int) *Series {
	cloned := make(map[Key][]int, len(entries))
	for k, positions := range entries {
		cloned[k] = slices.Clone(positions)
	}
	return &Series{extractor: extractorID, entries: cloned, total: total}
}

func (s *Series) Len() int            { return len(s.entries) }
func (s *Series) TotalCounts() int    { return s.total }
func (s *Series) ExtractorID() string { return s.extractor }
func (s *Series) Keys() []Key         { return sortedKeys(s.entries) }

// Positions returns a copy of the positions of k.
func (s *Series) Positions(k Key) []int {
	return slices.Clone(s.entries[k])
}

func (s *Series) Items() iter.Seq2[Key, []int] {
	return func(yield func(Key, []int) bool) {
		for _, k := range s.Keys() {
			if !yield(k, s.Positions(k)) {
				return
			}
		}
	}
}

// Combine appends the positions of other shifted by the length of s.
func (s *Series) Combine(other *Series) (*Series, error) {
	if err := checkSameExtractor(s.extractor, other.extractor); err != nil {
		return nil, err
	}
	entries := make(map[Key][]int, len(s.entries)+len(other.entries))
	for k, positions := range s.entries {
		entries[k] = slices.Clone(positions)
	}
	for k, positions := range other.entries {
		merged := entries[k]
		for _, p := range positions {
			merged = append(merged, p+s.total)
		}
		entries[k] = merged
	}
	return &Series{extractor: s.extractor, entries: entries, total: s.total + other.total}, nil
}
