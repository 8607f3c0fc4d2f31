package encoder

import (
	"context"
	"fmt"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/collection"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/logger"
)

// Encodable is a feature set with a scalar weight per key. Series sets hold
// positions rather than weights and are not encodable.
type Encodable[S any] interface {
	features.Set[S]
	features.Weighted
}

// MatrixExtractor couples an extractor with the feature vocabulary its
// matrices are encoded against.
type MatrixExtractor[S Encodable[S]] struct {
	extractor features.Extractor[S]
	encoder   *FeaturesEncoder
	opts      collection.Options
}

// NewMatrixExtractor settles the feature vocabulary. A tokenizer with a
// fixed vocabulary supplies it directly. Otherwise the vocabulary is every
// token observed in base, which is typically the training collection.
// WithQuantilePruning narrows an inferred vocabulary to the tokens whose
// count in base is neither rare nor dominant. Either way the extractor
// expands the tokens into its feature keys, sorted.
func NewMatrixExtractor[S Encodable[S]](ctx context.Context, ext features.Extractor[S], base *corpus.Collection, opts collection.Options, vocabOpts ...VocabularyOption) (*MatrixExtractor[S], error) {
	var settings vocabularySettings
	for _, o := range vocabOpts {
		o(&settings)
	}
	if settings.prune {
		if err := validateQuantiles(settings.low, settings.high); err != nil {
			return nil, err
		}
	}

	var tokens []tokenizer.Token
	pruned := 0
	vocab := ext.Tokenizer().Vocabulary()
	switch vocab.Kind() {
	case tokenizer.FixedVocabulary:
		tokens = vocab.Tokens()
	case tokenizer.DynamicVocabulary:
		if base == nil {
			return nil, apperrors.New(apperrors.ErrInvalidInput, "a dynamic vocabulary needs a base collection")
		}
		if settings.prune {
			counts, err := CountTokens(ctx, ext.Tokenizer(), base)
			if err != nil {
				return nil, fmt.Errorf("counting vocabulary: %w", err)
			}
			kept, err := counts.PruneQuantiles(settings.low, settings.high)
			if err != nil {
				return nil, err
			}
			tokens = kept.Tokens()
			pruned = counts.Len() - kept.Len()
			break
		}
		buildOpts := opts
		buildOpts.Publisher = nil
		buildOpts.Label = "vocabulary"
		h, err := collection.BuildHierarchical(ctx, base, features.NewVocabularyExtractor(ext.Tokenizer()), buildOpts)
		if err != nil {
			return nil, fmt.Errorf("inferring vocabulary: %w", err)
		}
		for _, k := range h.Total().Keys() {
			tokens = append(tokens, k.Head)
		}
	}

	keys := ext.FeatureKeys(tokens)
	slices.SortFunc(keys, features.Compare)
	logger.FromContext(ctx).Info("feature vocabulary ready",
		"component", "matrix-extractor",
		"vocabulary", vocab.Kind().String(),
		"tokens", len(tokens),
		"pruned", pruned,
		"features", len(keys),
	)
	return &MatrixExtractor[S]{
		extractor: ext,
		encoder:   NewFeaturesEncoder(keys, opts.Metrics),
		opts:      opts,
	}, nil
}

func (m *MatrixExtractor[S]) Encoder() *FeaturesEncoder { return m.encoder }

func (m *MatrixExtractor[S]) Extractor() features.Extractor[S] { return m.extractor }

// Encode extracts every document of coll and returns one row per document
// in collection order.
func (m *MatrixExtractor[S]) Encode(ctx context.Context, coll *corpus.Collection) (*Matrix, error) {
	sets, err := collection.Extract(ctx, coll, m.extractor, m.opts)
	if err != nil {
		return nil, err
	}
	return m.encoder.Encode(weighted(sets)), nil
}

func weighted[S features.Weighted](sets []S) []features.Weighted {
	out := make([]features.Weighted, len(sets))
	for i, s := range sets {
		out[i] = s
	}
	return out
}

// Dataset is an encoded collection ready for a classifier.
type Dataset struct {
	DocumentIDs []string
	X           *Matrix
	Y           []int
}

// CollectionEncoder encodes labelled collections against the features and
// authors of one training collection.
type CollectionEncoder[S Encodable[S]] struct {
	Features *MatrixExtractor[S]
	Authors  *AuthorEncoder
}

// FitCollectionEncoder derives the feature vocabulary and the author labels
// from training.
func FitCollectionEncoder[S Encodable[S]](ctx context.Context, ext features.Extractor[S], training *corpus.Collection, opts collection.Options, vocabOpts ...VocabularyOption) (*CollectionEncoder[S], error) {
	mx, err := NewMatrixExtractor(ctx, ext, training, opts, vocabOpts...)
	if err != nil {
		return nil, err
	}
	return &CollectionEncoder[S]{Features: mx, Authors: NewAuthorEncoder(training)}, nil
}

// Encode fails with ErrAuthorNotFound when coll has an author the training
// collection lacks.
func (c *CollectionEncoder[S]) Encode(ctx context.Context, coll *corpus.Collection) (*Dataset, error) {
	docs := coll.Documents()
	y, err := c.Authors.EncodeDocuments(docs)
	if err != nil {
		return nil, err
	}
	x, err := c.Features.Encode(ctx, coll)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID()
	}
	return &Dataset{DocumentIDs: ids, X: x, Y: y}, nil
}
