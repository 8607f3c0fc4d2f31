package encoder

import (
	"context"
	"maps"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// TokenCounts tallies how often each token occurs across a collection. It
// decides which observed tokens are worth turning into features.
type TokenCounts struct {
	counts map[tokenizer.Token]int
	total  int
}

func NewTokenCounts(counts map[tokenizer.Token]int) *TokenCounts {
	c := &TokenCounts{counts: make(map[tokenizer.Token]int, len(counts))}
	for t, n := range counts {
		c.counts[t] = n
		c.total += n
	}
	return c
}

// CountTokens tokenizes every document of coll with tok.
func CountTokens(ctx context.Context, tok tokenizer.Tokenizer, coll *corpus.Collection) (*TokenCounts, error) {
	c := &TokenCounts{counts: make(map[tokenizer.Token]int)}
	for _, d := range coll.Documents() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for t := range tok.Tokens(d.Contents()) {
			c.counts[t]++
			c.total++
		}
	}
	return c, nil
}

func (c *TokenCounts) Len() int { return len(c.counts) }

// Total is the number of token occurrences counted.
func (c *TokenCounts) Total() int { return c.total }

func (c *TokenCounts) Count(t tokenizer.Token) int { return c.counts[t] }

// Tokens returns the counted tokens in lexical order.
func (c *TokenCounts) Tokens() []tokenizer.Token {
	return slices.Sorted(maps.Keys(c.counts))
}

// PruneQuantiles keeps the tokens whose count lies strictly between the
// low and high quantiles of all counts. Both bounds must satisfy
// 0 < low < high < 1.
func (c *TokenCounts) PruneQuantiles(low, high float64) (*TokenCounts, error) {
	if err := validateQuantiles(low, high); err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(c.counts))
	for _, n := range c.counts {
		values = append(values, float64(n))
	}
	slices.Sort(values)
	vmin, vmax := quantile(values, low), quantile(values, high)

	kept := make(map[tokenizer.Token]int)
	for t, n := range c.counts {
		if v := float64(n); vmin < v && v < vmax {
			kept[t] = n
		}
	}
	return NewTokenCounts(kept), nil
}

func validateQuantiles(low, high float64) error {
	if !(0 < low && low < high && high < 1) {
		return apperrors.Newf(apperrors.ErrConfiguration, "quantile bounds must satisfy 0 < low < high < 1, got %g and %g", low, high)
	}
	return nil
}

// quantile interpolates linearly between the closest ranks of sorted, the
// definition spreadsheet and dataframe tools default to.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	i := int(pos)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// VocabularyOption adjusts how NewMatrixExtractor infers a dynamic
// vocabulary.
type VocabularyOption func(*vocabularySettings)

type vocabularySettings struct {
	prune     bool
	low, high float64
}

// WithQuantilePruning drops observed tokens whose corpus count falls outside
// the (low, high) quantile band. Fixed vocabularies are never pruned.
func WithQuantilePruning(low, high float64) VocabularyOption {
	return func(s *vocabularySettings) {
		s.prune = true
		s.low, s.high = low, high
	}
}
