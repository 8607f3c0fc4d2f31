// Package features implements the feature-set algebra and the extractors
// producing it. Every set records the extractor that produced it and can be
// combined with another set of the same extractor; combining the sets of two
// token sequences matches extracting from their concatenation (exactly for
// vocabularies, frequencies and series, approximately for pairwise
// association).
package features

import (
	"iter"

	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Set is the behaviour shared by every feature set variant. S is the concrete
// set type, so Combine stays statically typed.
type Set[S any] interface {
	Len() int
	TotalCounts() int
	ExtractorID() string
	Keys() []Key
	Combine(other S) (S, error)
}

// Weighted is a feature set with a numeric weight per key, which is what the
// matrix encoder consumes. Items yields keys in Compare order.
type Weighted interface {
	Len() int
	Items() iter.Seq2[Key, float64]
}

func checkSameExtractor(a, b string) error {
	if a != b {
		return apperrors.Newf(apperrors.ErrExtractorMismatch, "cannot combine %s with %s", a, b)
	}
	return nil
}

func weightedItems(keys []Key, weight func(Key) float64) iter.Seq2[Key, float64] {
	return func(yield func(Key, float64) bool) {
		for _, k := range keys {
			if !yield(k, weight(k)) {
				return
			}
		}
	}
}
