package features

import "iter"

// Vocabulary records which keys occur. Every present key weighs 1 and
// TotalCounts is the number of distinct keys.
type Vocabulary struct {
	extractor string
	entries   map[Key]struct{}
}

func NewVocabulary(extractorID string, keys ...Key) *Vocabulary {
	entries := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		entries[k] = struct{}{}
	}
	return &Vocabulary{extractor: extractorID, entries: entries}
}

func (v *Vocabulary) Len() int            { return len(v.entries) }
func (v *Vocabulary) TotalCounts() int    { return len(v.entries) }
func (v *Vocabulary) ExtractorID() string { return v.extractor }
func (v *Vocabulary) Keys() []Key         { return sortedKeys(v.entries) }

func (v *Vocabulary) Contains(k Key) bool {
	_, ok := v.entries[k]
	return ok
}

func (v *Vocabulary) Get(k Key) (float64, bool) {
	if v.Contains(k) {
		return 1, true
	}
	return 0, false
}

func (v *Vocabulary) Items() iter.Seq2[Key, float64] {
	return weightedItems(v.Keys(), func(Key) float64 { return 1 })
}

// Combine is set union.
func (v *Vocabulary) Combine(other *Vocabulary) (*Vocabulary, error) {
	if err := checkSameExtractor(v.extractor, other.extractor); err != nil {
		return nil, err
	}
	entries := make(map[Key]struct{}, len(v.entries)+len(other.entries))
	for k := range v.entries {
		entries[k] = struct{}{}
	}
	for k := range other.entries {
		entries[k] = struct{}{}
	}
	return &Vocabulary{extractor: v.extractor, entries: entries}, nil
}
