package main

import (
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/grouper"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

func buildTokenizer(f config.FeaturesConfig) (tokenizer.Tokenizer, error) {
	base := tokenizer.Basic{}
	vocabulary := make([]tokenizer.Token, len(f.Vocabulary))
	for i, w := range f.Vocabulary {
		vocabulary[i] = tokenizer.Token(w)
	}

	switch f.Tokenizer {
	case "basic":
		return base, nil
	case "stemming":
		return tokenizer.NewStemming(base), nil
	case "filtering":
		return tokenizer.NewFiltering(base, vocabulary), nil
	case "collapsing":
		return tokenizer.NewCollapsing(base, vocabulary, tokenizer.Token(f.FillToken))
	case "hashing":
		return tokenizer.NewHashing(base, f.HashBuckets)
	default:
		return nil, apperrors.Newf(apperrors.ErrConfiguration, "unknown tokenizer %q", f.Tokenizer)
	}
}

// encodableKind reports whether the configured extractor yields weighted
// sets that can be laid out as matrix rows.
func encodableKind(extractor string) error {
	if extractor == "series" {
		return apperrors.New(apperrors.ErrConfiguration, "series features keep positions and cannot be encoded as a matrix")
	}
	return nil
}

func entropiesExtractor(f config.FeaturesConfig, tok tokenizer.Tokenizer) (*features.EntropiesExtractor, error) {
	g, err := grouper.NewFixed(f.EntropyWindow)
	if err != nil {
		return nil, err
	}
	return features.NewEntropiesExtractor(tok, g), nil
}

func pairwiseExtractor(f config.FeaturesConfig, tok tokenizer.Tokenizer) (*features.PairwiseAssociationExtractor, error) {
	weights, err := features.NewWeights(f.PairwiseWeights...)
	if err != nil {
		return nil, err
	}
	return features.NewPairwiseAssociationExtractor(tok, weights)
}
