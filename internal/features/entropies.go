package features

import (
	"iter"
	"maps"
	"math"
)

// entropyEpsilon keeps the normalisation finite when a document has a
// single part (log 1 == 0).
const entropyEpsilon = 1e-300

// Entropies accumulates, per key, the sum of part frequencies and the sum of
// f·ln f over the parts of a document. TotalCounts is the number of parts.
// The normalised entropy of a key is derived on read.
type Entropies struct {
	extractor   string
	sumFreqs    map[Key]float64
	sumFreqsLog map[Key]float64
	total       int
}

func NewEntropies(extractorID string, sumFreqs, sumFreqsLog map[Key]float64, total int) *Entropies {
	return &Entropies{
		extractor:   extractorID,
		sumFreqs:    maps.Clone(sumFreqs),
		sumFreqsLog: maps.Clone(sumFreqsLog),
		total:       total,
	}
}

func (e *Entropies) Len() int            { return len(e.sumFreqs) }
func (e *Entropies) TotalCounts() int    { return e.total }
func (e *Entropies) ExtractorID() string { return e.extractor }
func (e *Entropies) Keys() []Key         { return sortedKeys(e.sumFreqs) }

// Accumulators returns Σf and Σ(f·ln f) for k.
func (e *Entropies) Accumulators(k Key) (sumFreqs, sumFreqsLog float64) {
	return e.sumFreqs[k], e.sumFreqsLog[k]
}

// Value is the normalised entropy of k's distribution across parts:
//
//	-1/(ln(total)·Σf + ε) · (Σ(f·ln f) − Σf·ln Σf)
//
// Keys with Σf == 0 have value 0.
func (e *Entropies) Value(k Key) float64 {
	sf := e.sumFreqs[k]
	if sf == 0 {
		return 0
	}
	sfl := e.sumFreqsLog[k]
	coeff := -1 / (math.Log(float64(e.total))*sf + entropyEpsilon)
	return coeff * (sfl - sf*math.Log(sf))
}

func (e *Entropies) Get(k Key) (float64, bool) {
	if _, ok := e.sumFreqs[k]; !ok {
		return 0, false
	}
	return e.Value(k), true
}

func (e *Entropies) Items() iter.Seq2[Key, float64] {
	return weightedItems(e.Keys(), e.Value)
}

// Combine adds the accumulators key-wise.
func (e *Entropies) Combine(other *Entropies) (*Entropies, error) {
	if err := checkSameExtractor(e.extractor, other.extractor); err != nil {
		return nil, err
	}
	sumFreqs := make(map[Key]float64, len(e.sumFreqs)+len(other.sumFreqs))
	sumFreqsLog := make(map[Key]float64, len(e.sumFreqs)+len(other.sumFreqs))
	for k, v := range e.sumFreqs {
		sumFreqs[k] = v
		sumFreqsLog[k] = e.sumFreqsLog[k]
	}
	for k, v := range other.sumFreqs {
		sumFreqs[k] += v
		sumFreqsLog[k] += other.sumFreqsLog[k]
	}
	return &Entropies{
		extractor:   e.extractor,
		sumFreqs:    sumFreqs,
		sumFreqsLog: sumFreqsLog,
		total:       e.total + other.total,
	}, nil
}
