package features

import (
	"encoding/json"
	"errors"
	"maps"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/grouper"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

const tolerance = 1e-10

type text string

func (t text) Contents() string { return string(t) }

func weightsOf(w Weighted) map[Key]float64 {
	return maps.Collect(w.Items())
}

func assertWeights(t *testing.T, want map[Key]float64, got Weighted) {
	t.Helper()
	gotMap := weightsOf(got)
	require.Len(t, gotMap, len(want))
	for k, v := range want {
		g, ok := gotMap[k]
		require.True(t, ok, "missing key %s", k)
		assert.InDelta(t, v, g, tolerance, "key %s", k)
	}
}

func TestVocabularyExtraction(t *testing.T) {
	ext := NewVocabularyExtractor(tokenizer.Sequence{})
	vocab := ext.Extract(text("one two one three three three three"))

	assert.Equal(t, 3, vocab.Len())
	assert.Equal(t, 3, vocab.TotalCounts())
	assertWeights(t, map[Key]float64{
		TokenKey("one"): 1, TokenKey("two"): 1, TokenKey("three"): 1,
	}, vocab)
}

func TestFrequencyExtraction(t *testing.T) {
	ext := NewFrequencyExtractor(tokenizer.Sequence{})
	freqs := ext.Extract(text("one two one three three three three"))

	assert.Equal(t, 3, freqs.Len())
	assert.Equal(t, 7, freqs.TotalCounts())
	assertWeights(t, map[Key]float64{
		TokenKey("three"): 4.0 / 7,
		TokenKey("one"):   2.0 / 7,
		TokenKey("two"):   1.0 / 7,
	}, freqs)
}

func TestFrequenciesSumToOne(t *testing.T) {
	ext := NewFrequencyExtractor(tokenizer.Basic{})
	freqs := ext.Extract(text("The best book describing how animals adapt to survive at the bottom of the sea."))
	var sum float64
	for _, v := range freqs.Items() {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, tolerance)
}

func TestFrequencyOfEmptyInput(t *testing.T) {
	ext := NewFrequencyExtractor(tokenizer.Sequence{})
	empty := ext.Extract(text(""))
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.TotalCounts())

	both, err := empty.Combine(ext.Extract(text("")))
	require.NoError(t, err)
	assert.Equal(t, 0, both.TotalCounts())

	some := ext.Extract(text("a b a"))
	combined, err := empty.Combine(some)
	require.NoError(t, err)
	assertWeights(t, weightsOf(some), combined)
	assert.Equal(t, 3, combined.TotalCounts())
}

func TestSeriesExtraction(t *testing.T) {
	ext := NewSeriesExtractor(tokenizer.Sequence{})
	series := ext.Extract(text("one two one three three two three"))

	assert.Equal(t, 3, series.Len())
	assert.Equal(t, 7, series.TotalCounts())
	assert.Equal(t, map[Key][]int{
		TokenKey("three"): {3, 4, 6},
		TokenKey("one"):   {0, 2},
		TokenKey("two"):   {1, 5},
	}, maps.Collect(series.Items()))
}

func TestEntropiesExtraction(t *testing.T) {
	ext := NewEntropiesExtractor(tokenizer.Sequence{}, mustFixed(t, 2))
	parts := [][]tokenizer.Token{
		{"one", "two"}, {"one", "three"}, {"one", "two"}, {"one"},
	}
	entropies := ext.ExtractParts(slices.Values(parts))

	assert.Equal(t, 3, entropies.Len())
	assert.Equal(t, 4, entropies.TotalCounts())
	assertWeights(t, map[Key]float64{
		TokenKey("two"):   0.5,
		TokenKey("one"):   0.960964047443681,
		TokenKey("three"): 0,
	}, entropies)
}

func TestEntropiesThroughGrouper(t *testing.T) {
	ext := NewEntropiesExtractor(tokenizer.Sequence{}, mustFixed(t, 2))
	direct := ext.Extract(text("one two one three one two one"))
	assertWeights(t, map[Key]float64{
		TokenKey("two"):   0.5,
		TokenKey("one"):   0.960964047443681,
		TokenKey("three"): 0,
	}, direct)
}

func TestEntropiesSinglePartIsFinite(t *testing.T) {
	ext := NewEntropiesExtractor(tokenizer.Sequence{}, mustFixed(t, 10))
	entropies := ext.Extract(text("a b a c"))
	require.Equal(t, 1, entropies.TotalCounts())
	for k, v := range entropies.Items() {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "key %s", k)
		assert.InDelta(t, 0, v, tolerance)
	}
	v, ok := entropies.Get(TokenKey("missing"))
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestEntropiesZeroMassIsZero(t *testing.T) {
	k := TokenKey("ghost")
	e := NewEntropies("x", map[Key]float64{k: 0}, map[Key]float64{k: 0}, 3)
	v, ok := e.Get(k)
	require.True(t, ok)
	assert.False(t, math.IsNaN(v))
	assert.Zero(t, v)
}

func TestCombineWithEmptySet(t *testing.T) {
	k := TokenKey("one")

	t.Run("vocabulary", func(t *testing.T) {
		got, err := NewVocabulary("x").Combine(NewVocabulary("x", k))
		require.NoError(t, err)
		assert.True(t, got.Contains(k))
	})
	t.Run("frequencies", func(t *testing.T) {
		got, err := NewFrequencies("x", nil, 0).Combine(NewFrequencies("x", map[Key]float64{k: 1}, 2))
		require.NoError(t, err)
		assertWeights(t, map[Key]float64{k: 1}, got)
	})
	t.Run("series", func(t *testing.T) {
		got, err := NewSeries("x", nil, 0).Combine(NewSeries("x", map[Key][]int{k: {0, 1}}, 2))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, got.Positions(k))
	})
	t.Run("entropies", func(t *testing.T) {
		full := NewEntropies("x", map[Key]float64{k: 1}, map[Key]float64{k: 0}, 2)
		got, err := NewEntropies("x", nil, nil, 0).Combine(full)
		require.NoError(t, err)
		sf, sfl := got.Accumulators(k)
		assert.Equal(t, 1.0, sf)
		assert.Zero(t, sfl)
		assert.Equal(t, 2, got.TotalCounts())

		back, err := full.Combine(NewEntropies("x", nil, nil, 0))
		require.NoError(t, err)
		assert.Equal(t, 1, back.Len())
	})
	t.Run("pairwise", func(t *testing.T) {
		pair := PairKey("one", "two")
		got, err := NewPairwiseAssociation("x", nil, 0).Combine(NewPairwiseAssociation("x", map[Key]float64{pair: 0.5}, 4))
		require.NoError(t, err)
		assertWeights(t, map[Key]float64{pair: 0.5}, got)
		assert.Equal(t, 4, got.TotalCounts())
	})
}

func TestCombineMatchesConcatenation(t *testing.T) {
	a := "one two one three three three three"
	b := "four two two one five"
	ab := a + " " + b
	ba := b + " " + a

	t.Run("vocabulary", func(t *testing.T) {
		ext := NewVocabularyExtractor(tokenizer.Sequence{})
		left, err := ext.Extract(text(a)).Combine(ext.Extract(text(b)))
		require.NoError(t, err)
		right, err := ext.Extract(text(b)).Combine(ext.Extract(text(a)))
		require.NoError(t, err)
		whole := ext.Extract(text(ab))
		assertWeights(t, weightsOf(whole), left)
		assertWeights(t, weightsOf(whole), right)
		assert.Equal(t, whole.TotalCounts(), left.TotalCounts())
	})

	t.Run("frequencies", func(t *testing.T) {
		ext := NewFrequencyExtractor(tokenizer.Sequence{})
		left, err := ext.Extract(text(a)).Combine(ext.Extract(text(b)))
		require.NoError(t, err)
		right, err := ext.Extract(text(b)).Combine(ext.Extract(text(a)))
		require.NoError(t, err)
		whole := ext.Extract(text(ab))
		assertWeights(t, weightsOf(whole), left)
		assertWeights(t, weightsOf(whole), right)
		assert.Equal(t, 12, left.TotalCounts())
	})

	t.Run("series", func(t *testing.T) {
		ext := NewSeriesExtractor(tokenizer.Sequence{})
		left, err := ext.Extract(text(a)).Combine(ext.Extract(text(b)))
		require.NoError(t, err)
		assert.Equal(t, maps.Collect(ext.Extract(text(ab)).Items()), maps.Collect(left.Items()))

		right, err := ext.Extract(text(b)).Combine(ext.Extract(text(a)))
		require.NoError(t, err)
		assert.Equal(t, maps.Collect(ext.Extract(text(ba)).Items()), maps.Collect(right.Items()))
		assert.Equal(t, 12, right.TotalCounts())
	})

	t.Run("entropies split on part boundaries", func(t *testing.T) {
		ext := NewEntropiesExtractor(tokenizer.Sequence{}, mustFixed(t, 2))
		left, err := ext.Extract(text("one two one three")).Combine(ext.Extract(text("one two one")))
		require.NoError(t, err)
		whole := ext.Extract(text("one two one three one two one"))
		assertWeights(t, weightsOf(whole), left)
		assert.Equal(t, whole.TotalCounts(), left.TotalCounts())
	})
}

func TestFrequencyCombineIsAssociative(t *testing.T) {
	ext := NewFrequencyExtractor(tokenizer.Sequence{})
	x := ext.Extract(text("a b c a"))
	y := ext.Extract(text("b b d"))
	z := ext.Extract(text("e a"))

	xy, err := x.Combine(y)
	require.NoError(t, err)
	left, err := xy.Combine(z)
	require.NoError(t, err)

	yz, err := y.Combine(z)
	require.NoError(t, err)
	right, err := x.Combine(yz)
	require.NoError(t, err)

	assertWeights(t, weightsOf(left), right)
	assert.Equal(t, left.TotalCounts(), right.TotalCounts())
}

func TestCombineRejectsForeignExtractor(t *testing.T) {
	basic := NewFrequencyExtractor(tokenizer.Basic{})
	seq := NewFrequencyExtractor(tokenizer.Sequence{})
	_, err := basic.Extract(text("some words here")).Combine(seq.Extract(text("some words here")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrExtractorMismatch))
}

func TestPairwiseAssociationExtraction(t *testing.T) {
	weights, err := NewWeights(0.25, 0.5, 0.25)
	require.NoError(t, err)
	ext, err := NewPairwiseAssociationExtractor(tokenizer.Sequence{}, weights)
	require.NoError(t, err)

	assocs := ext.Extract(text("a b a c"))
	assert.Equal(t, 4, assocs.TotalCounts())
	assertWeights(t, map[Key]float64{
		PairKey("b", "a"): 0.5,
		PairKey("a", "b"): 0.25,
		PairKey("a", "c"): 0.25,
	}, assocs)

	short := ext.Extract(text("a b"))
	assert.Equal(t, 0, short.Len())
	assert.Equal(t, 0, short.TotalCounts())
}

func TestPairwiseCombineSumsCounters(t *testing.T) {
	weights, err := NewWeights(0.1, 0.2, 0.4, 0.2, 0.1)
	require.NoError(t, err)
	ext, err := NewPairwiseAssociationExtractor(tokenizer.Sequence{}, weights)
	require.NoError(t, err)

	x := ext.Extract(text("one two one three three two three"))
	y := ext.Extract(text("three one two three one one"))
	xy, err := x.Combine(y)
	require.NoError(t, err)
	yx, err := y.Combine(x)
	require.NoError(t, err)

	assertWeights(t, weightsOf(xy), yx)
	assert.Equal(t, x.TotalCounts()+y.TotalCounts(), xy.TotalCounts())
	for k, v := range xy.Items() {
		xv, _ := x.Get(k)
		yv, _ := y.Get(k)
		assert.InDelta(t, xv+yv, v, tolerance)
	}
}

func TestWeightsValidation(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"empty", nil},
		{"even", []float64{0.5, 0.5}},
		{"asymmetric", []float64{0.1, 0.5, 0.4}},
		{"not finite", []float64{math.Inf(1), 0.5, math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeights(tt.values...)
			assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
		})
	}
}

func TestWeightFactories(t *testing.T) {
	tri, err := TriangularWeights(5)
	require.NoError(t, err)
	want := []float64{1.0 / 9, 2.0 / 9, 3.0 / 9, 2.0 / 9, 1.0 / 9}
	assert.InDeltaSlice(t, want, tri.Values(), tolerance)
	assert.Equal(t, 2, tri.Center())

	uni, err := UniformWeights(3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, uni.Values(), tolerance)

	_, err = UniformWeights(4)
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestFeatureKeys(t *testing.T) {
	vocab := []tokenizer.Token{"a", "b"}
	freq := NewFrequencyExtractor(tokenizer.Sequence{})
	assert.Equal(t, []Key{TokenKey("a"), TokenKey("b")}, freq.FeatureKeys(vocab))

	weights, err := UniformWeights(3)
	require.NoError(t, err)
	pair, err := NewPairwiseAssociationExtractor(tokenizer.Sequence{}, weights)
	require.NoError(t, err)
	assert.Equal(t, []Key{
		PairKey("a", "a"), PairKey("a", "b"), PairKey("b", "a"), PairKey("b", "b"),
	}, pair.FeatureKeys(vocab))
}

func TestExtractorIDs(t *testing.T) {
	a := NewFrequencyExtractor(tokenizer.Basic{})
	b := NewFrequencyExtractor(tokenizer.Basic{})
	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), NewSeriesExtractor(tokenizer.Basic{}).ID())
	assert.NotEqual(t,
		NewEntropiesExtractor(tokenizer.Basic{}, mustFixed(t, 2)).ID(),
		NewEntropiesExtractor(tokenizer.Basic{}, mustFixed(t, 3)).ID(),
	)
}

func TestKeyOrdering(t *testing.T) {
	keys := []Key{PairKey("a", "b"), TokenKey("b"), PairKey("a", "a"), TokenKey("a")}
	slices.SortFunc(keys, Compare)
	assert.Equal(t, []Key{TokenKey("a"), TokenKey("b"), PairKey("a", "a"), PairKey("a", "b")}, keys)
	assert.Equal(t, "(a,b)", PairKey("a", "b").String())
	assert.Equal(t, "a", TokenKey("a").String())
}

func TestSetsSurviveJSON(t *testing.T) {
	tok := tokenizer.Sequence{}
	input := text("one two one three three two three")
	weights, err := UniformWeights(3)
	require.NoError(t, err)
	pairExt, err := NewPairwiseAssociationExtractor(tok, weights)
	require.NoError(t, err)

	t.Run("frequencies", func(t *testing.T) {
		orig := NewFrequencyExtractor(tok).Extract(input)
		data, err := json.Marshal(orig)
		require.NoError(t, err)
		var decoded *Frequencies
		require.NoError(t, json.Unmarshal(data, &decoded))
		assertWeights(t, weightsOf(orig), decoded)
		assert.Equal(t, orig.TotalCounts(), decoded.TotalCounts())
		assert.Equal(t, orig.ExtractorID(), decoded.ExtractorID())
	})
	t.Run("series", func(t *testing.T) {
		orig := NewSeriesExtractor(tok).Extract(input)
		data, err := json.Marshal(orig)
		require.NoError(t, err)
		var decoded *Series
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, maps.Collect(orig.Items()), maps.Collect(decoded.Items()))
	})
	t.Run("entropies", func(t *testing.T) {
		orig := NewEntropiesExtractor(tok, mustFixed(t, 2)).Extract(input)
		data, err := json.Marshal(orig)
		require.NoError(t, err)
		var decoded *Entropies
		require.NoError(t, json.Unmarshal(data, &decoded))
		assertWeights(t, weightsOf(orig), decoded)
	})
	t.Run("vocabulary", func(t *testing.T) {
		orig := NewVocabularyExtractor(tok).Extract(input)
		data, err := json.Marshal(orig)
		require.NoError(t, err)
		var decoded *Vocabulary
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, orig.Keys(), decoded.Keys())
	})
	t.Run("pairwise", func(t *testing.T) {
		orig := pairExt.Extract(input)
		data, err := json.Marshal(orig)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), `"p":true`))
		var decoded *PairwiseAssociation
		require.NoError(t, json.Unmarshal(data, &decoded))
		assertWeights(t, weightsOf(orig), decoded)
	})
}

func mustFixed(t *testing.T, size int) *grouper.Fixed {
	t.Helper()
	g, err := grouper.NewFixed(size)
	require.NoError(t, err)
	return g
}

func BenchmarkFrequencyExtract(b *testing.B) {
	ext := NewFrequencyExtractor(tokenizer.Basic{})
	doc := text(strings.Repeat("Distributed search engines process queries across multiple shards. ", 200))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ext.Extract(doc)
	}
}

func BenchmarkPairwiseExtract(b *testing.B) {
	weights, _ := TriangularWeights(5)
	ext, _ := NewPairwiseAssociationExtractor(tokenizer.Basic{}, weights)
	doc := text(strings.Repeat("Distributed search engines process queries across multiple shards. ", 200))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ext.Extract(doc)
	}
}
