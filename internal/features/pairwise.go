package features

import (
	"iter"
	"maps"
)

// PairwiseAssociation maps (center, other) pairs to the window weight they
// accumulated. TotalCounts is the number of (window, position) contributions.
//
// Combine sums the counters. This is associative and commutative but not
// exact: windows spanning the boundary between two combined documents are
// never counted.
type PairwiseAssociation struct {
	extractor string
	entries   map[Key]float64
	total     int
}

func NewPairwiseAssociation(extractorID string, entries map[Key]float64, total int) *PairwiseAssociation {
	return &PairwiseAssociation{extractor: extractorID, entries: maps.Clone(entries), total: total}
}

func (p *PairwiseAssociation) Len() int            { return len(p.entries) }
func (p *PairwiseAssociation) TotalCounts() int    { return p.total }
func (p *PairwiseAssociation) ExtractorID() string { return p.extractor }
func (p *PairwiseAssociation) Keys() []Key         { return sortedKeys(p.entries) }

func (p *PairwiseAssociation) Get(k Key) (float64, bool) {
	v, ok := p.entries[k]
	return v, ok
}

func (p *PairwiseAssociation) Items() iter.Seq2[Key, float64] {
	return weightedItems(p.Keys(), func(k Key) float64 { return p.entries[k] })
}

func (p *PairwiseAssociation) Combine(other *PairwiseAssociation) (*PairwiseAssociation, error) {
	if err := checkSameExtractor(p.extractor, other.extractor); err != nil {
		return nil, err
	}
	entries := make(map[Key]float64, len(p.entries)+len(other.entries))
	maps.Copy(entries, p.entries)
	for k, v := range other.entries {
		entries[k] += v
	}
	return &PairwiseAssociation{extractor: p.extractor, entries: entries, total: p.total + other.total}, nil
}
