package encoder

import (
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/indexer"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/metrics"
)

// FeaturesEncoder maps weighted feature sets onto matrix rows. Keys outside
// its vocabulary are skipped, never rejected; strict vocabularies are the
// tokenizer's job.
type FeaturesEncoder struct {
	index   *indexer.Indexer[features.Key]
	metrics *metrics.Metrics
}

// NewFeaturesEncoder indexes vocabulary in the order given.
func NewFeaturesEncoder(vocabulary []features.Key, m *metrics.Metrics) *FeaturesEncoder {
	return &FeaturesEncoder{index: indexer.New(vocabulary...), metrics: m}
}

func (e *FeaturesEncoder) Len() int { return e.index.Len() }

func (e *FeaturesEncoder) Vocabulary() []features.Key { return e.index.Keys() }

// Encode builds one row per set, in order.
func (e *FeaturesEncoder) Encode(sets []features.Weighted) *Matrix {
	b := newMatrixBuilder(e.index.Len(), len(sets))
	for _, set := range sets {
		cols := make([]int, 0, set.Len())
		vals := make([]float64, 0, set.Len())
		dropped := 0
		for k, v := range set.Items() {
			col, err := e.index.Encode(k)
			if err != nil {
				dropped++
				continue
			}
			cols = append(cols, col)
			vals = append(vals, v)
		}
		b.appendRow(cols, vals)
		e.metrics.RowEncoded(dropped)
	}
	return b.build()
}

// Decode maps row i of m back to feature weights.
func (e *FeaturesEncoder) Decode(m *Matrix, i int) (map[features.Key]float64, error) {
	if m.Cols() != e.index.Len() {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput,
			"matrix has %d columns, vocabulary has %d", m.Cols(), e.index.Len())
	}
	cols, vals, err := m.Row(i)
	if err != nil {
		return nil, err
	}
	keys, err := e.index.DecodeMany(cols)
	if err != nil {
		return nil, err
	}
	out := make(map[features.Key]float64, len(keys))
	for j, k := range keys {
		out[k] = vals[j]
	}
	return out, nil
}
