package encoder

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/collection"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

func TestCountTokens(t *testing.T) {
	coll := books(t,
		corpus.NewBook("b1", "A", "t", "a a a b b c"),
		corpus.NewBook("b2", "B", "t", "a b d"),
	)
	counts, err := CountTokens(context.Background(), tokenizer.Sequence{}, coll)
	require.NoError(t, err)

	assert.Equal(t, 4, counts.Len())
	assert.Equal(t, 9, counts.Total())
	assert.Equal(t, 4, counts.Count("a"))
	assert.Equal(t, 3, counts.Count("b"))
	assert.Equal(t, 0, counts.Count("z"))
	assert.Equal(t, []tokenizer.Token{"a", "b", "c", "d"}, counts.Tokens())
}

func TestCountTokensHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CountTokens(ctx, tokenizer.Sequence{}, trainingCollection(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPruneQuantiles(t *testing.T) {
	counts := NewTokenCounts(map[tokenizer.Token]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 10})

	tests := []struct {
		name      string
		low, high float64
		want      []tokenizer.Token
		total     int
	}{
		// Quantiles land on exact ranks: 2 and 4, both excluded.
		{"exact ranks", 0.25, 0.75, []tokenizer.Token{"c"}, 3},
		// Interpolated: 1.4 and 7.6.
		{"interpolated", 0.1, 0.9, []tokenizer.Token{"b", "c", "d"}, 9},
		{"upper band", 0.5, 0.99, []tokenizer.Token{"d"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, err := counts.PruneQuantiles(tt.low, tt.high)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kept.Tokens())
			assert.Equal(t, tt.total, kept.Total())
		})
	}
	assert.Equal(t, 5, counts.Len(), "pruning leaves the receiver untouched")
}

func TestPruneQuantilesRejectsInvalidBounds(t *testing.T) {
	counts := NewTokenCounts(map[tokenizer.Token]int{"a": 1})
	for _, b := range [][2]float64{{0, 0.5}, {0.5, 1}, {0.6, 0.4}, {0.5, 0.5}, {-0.1, 0.5}, {math.NaN(), 0.5}} {
		_, err := counts.PruneQuantiles(b[0], b[1])
		assert.True(t, errors.Is(err, apperrors.ErrConfiguration), "bounds %v", b)
	}
}

func TestQuantileOfEmptyAndSingle(t *testing.T) {
	assert.Equal(t, 0.0, quantile(nil, 0.5))
	assert.Equal(t, 7.0, quantile([]float64{7}, 0.3))
}

func TestMatrixExtractorPrunesDynamicVocabulary(t *testing.T) {
	ctx := context.Background()
	base := books(t,
		corpus.NewBook("b1", "A", "t", "a a a b b c"),
		corpus.NewBook("b2", "B", "t", "a b d"),
	)
	ext := features.NewFrequencyExtractor(tokenizer.Sequence{})

	// Counts sorted are 1 1 3 4, so the band is (1, 3.7) and only b survives.
	mx, err := NewMatrixExtractor(ctx, ext, base, collection.Options{}, WithQuantilePruning(0.1, 0.9))
	require.NoError(t, err)
	assert.Equal(t, 1, mx.Encoder().Len())
	assert.Equal(t, []features.Key{features.TokenKey("b")}, mx.Encoder().Vocabulary())

	unpruned, err := NewMatrixExtractor(ctx, ext, base, collection.Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, unpruned.Encoder().Len())
}

func TestMatrixExtractorPruningKeepsFixedVocabulary(t *testing.T) {
	tok := tokenizer.NewFiltering(tokenizer.Basic{}, []tokenizer.Token{"about", "how"})
	mx, err := NewMatrixExtractor(context.Background(), features.NewFrequencyExtractor(tok), nil, collection.Options{}, WithQuantilePruning(0.1, 0.9))
	require.NoError(t, err)
	assert.Equal(t, 2, mx.Encoder().Len())
}

func TestMatrixExtractorRejectsInvalidPruning(t *testing.T) {
	_, err := NewMatrixExtractor(context.Background(), features.NewFrequencyExtractor(tokenizer.Basic{}), trainingCollection(t), collection.Options{}, WithQuantilePruning(0.5, 0.2))
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}
