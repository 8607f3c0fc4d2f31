package features

import (
	"iter"
	"maps"
)

// Frequencies maps each key to its relative frequency. TotalCounts is the
// number of tokens the frequencies were computed from; an empty input gives
// no entries and a zero total.
type Frequencies struct {
	extractor string
	entries   map[Key]float64
	total     int
}

func NewFrequencies(extractorID string, entries map[Key]float64, total int) *Frequencies {
	return &Frequencies{extractor: extractorID, entries: maps.Clone(entries), total: total}
}

func (f *Frequencies) Len() int            { return len(f.entries) }
func (f *Frequencies) TotalCounts() int    { return f.total }
func (f *Frequencies) ExtractorID() string { return f.extractor }
func (f *Frequencies) Keys() []Key         { return sortedKeys(f.entries) }

func (f *Frequencies) Get(k Key) (float64, bool) {
	v, ok := f.entries[k]
	return v, ok
}

func (f *Frequencies) Items() iter.Seq2[Key, float64] {
	return weightedItems(f.Keys(), func(k Key) float64 { return f.entries[k] })
}

// Combine averages both operands weighted by their token counts, which is
// exactly the frequency of the concatenated input.
func (f *Frequencies) Combine(other *Frequencies) (*Frequencies, error) {
	if err := checkSameExtractor(f.extractor, other.extractor); err != nil {
		return nil, err
	}
	total := f.total + other.total
	entries := make(map[Key]float64, max(len(f.entries), len(other.entries)))
	if total == 0 {
		return &Frequencies{extractor: f.extractor, entries: entries}, nil
	}
	ownShare := float64(f.total) / float64(total)
	otherShare := float64(other.total) / float64(total)
	for k, v := range f.entries {
		entries[k] += v * ownShare
	}
	for k, v := range other.entries {
		entries[k] += v * otherShare
	}
	return &Frequencies{extractor: f.extractor, entries: entries, total: total}, nil
}
