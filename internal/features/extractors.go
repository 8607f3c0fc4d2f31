package features

import (
	"iter"
	"math"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/grouper"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/identity"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/tokenizer"
)

// Text is anything with contents to tokenize, typically a book.
type Text interface {
	Contents() string
}

// Extractor computes one feature set per text. Extraction is a pure function
// of the text; ID identifies the extractor configuration across runs.
type Extractor[S any] interface {
	ID() string
	Tokenizer() tokenizer.Tokenizer
	Extract(text Text) S
	// FeatureKeys lists the keys this extractor can emit for a token
	// vocabulary.
	FeatureKeys(vocabulary []tokenizer.Token) []Key
}

func extractorID(name string, parts ...string) string {
	return identity.Digest(identity.Describe(name, parts...))
}

// VocabularyExtractor records which tokens occur.
type VocabularyExtractor struct {
	tokenizer tokenizer.Tokenizer
	id        string
}

func NewVocabularyExtractor(tok tokenizer.Tokenizer) *VocabularyExtractor {
	return &VocabularyExtractor{tokenizer: tok, id: extractorID("Vocabularies", tok.ID())}
}

func (e *VocabularyExtractor) ID() string                     { return e.id }
func (e *VocabularyExtractor) Tokenizer() tokenizer.Tokenizer { return e.tokenizer }

func (e *VocabularyExtractor) Extract(text Text) *Vocabulary {
	return e.ExtractTokens(e.tokenizer.Tokens(text.Contents()))
}

func (e *VocabularyExtractor) ExtractTokens(tokens iter.Seq[tokenizer.Token]) *Vocabulary {
	entries := make(map[Key]struct{})
	for t := range tokens {
		entries[TokenKey(t)] = struct{}{}
	}
	return &Vocabulary{extractor: e.id, entries: entries}
}

func (e *VocabularyExtractor) FeatureKeys(vocabulary []tokenizer.Token) []Key {
	return TokenKeys(vocabulary)
}

// FrequencyExtractor computes relative token frequencies.
type FrequencyExtractor struct {
	tokenizer tokenizer.Tokenizer
	id        string
}

func NewFrequencyExtractor(tok tokenizer.Tokenizer) *FrequencyExtractor {
	return &FrequencyExtractor{tokenizer: tok, id: extractorID("Frequencies", tok.ID())}
}

func (e *FrequencyExtractor) ID() string                     { return e.id }
func (e *FrequencyExtractor) Tokenizer() tokenizer.Tokenizer { return e.tokenizer }

func (e *FrequencyExtractor) Extract(text Text) *Frequencies {
	return e.ExtractTokens(e.tokenizer.Tokens(text.Contents()))
}

func (e *FrequencyExtractor) ExtractTokens(tokens iter.Seq[tokenizer.Token]) *Frequencies {
	entries, total := frequencies(tokens)
	return &Frequencies{extractor: e.id, entries: entries, total: total}
}

func (e *FrequencyExtractor) FeatureKeys(vocabulary []tokenizer.Token) []Key {
	return TokenKeys(vocabulary)
}

// frequencies counts tokens and normalises by the token count. An empty
// stream yields no entries and a zero total.
func frequencies(tokens iter.Seq[tokenizer.Token]) (map[Key]float64, int) {
	entries := make(map[Key]float64)
	total := 0
	for t := range tokens {
		entries[TokenKey(t)]++
		total++
	}
	for k := range entries {
		entries[k] /= float64(total)
	}
	return entries, total
}

// SeriesExtractor records token positions.
type SeriesExtractor struct {
	tokenizer tokenizer.Tokenizer
	id        string
}

func NewSeriesExtractor(tok tokenizer.Tokenizer) *SeriesExtractor {
	return &SeriesExtractor{tokenizer: tok, id: extractorID("Series", tok.ID())}
}

func (e *SeriesExtractor) ID() string                     { return e.id }
func (e *SeriesExtractor) Tokenizer() tokenizer.Tokenizer { return e.tokenizer }

func (e *SeriesExtractor) Extract(text Text) *Series {
	return e.ExtractTokens(e.tokenizer.Tokens(text.Contents()))
}

func (e *SeriesExtractor) ExtractTokens(tokens iter.Seq[tokenizer.Token]) *Series {
	entries := make(map[Key][]int)
	total := 0
	for t := range tokens {
		k := TokenKey(t)
		entries[k] = append(entries[k], total)
		total++
	}
	return &Series{extractor: e.id, entries: entries, total: total}
}

func (e *SeriesExtractor) FeatureKeys(vocabulary []tokenizer.Token) []Key {
	return TokenKeys(vocabulary)
}

// EntropiesExtractor measures how evenly each token spreads over the parts
// a grouper cuts a document into.
type EntropiesExtractor struct {
	tokenizer tokenizer.Tokenizer
	grouper   grouper.Grouper
	id        string
}

func NewEntropiesExtractor(tok tokenizer.Tokenizer, g grouper.Grouper) *EntropiesExtractor {
	return &EntropiesExtractor{
		tokenizer: tok,
		grouper:   g,
		id:        extractorID("Entropies", tok.ID(), g.ID()),
	}
}

func (e *EntropiesExtractor) ID() string                     { return e.id }
func (e *EntropiesExtractor) Tokenizer() tokenizer.Tokenizer { return e.tokenizer }

func (e *EntropiesExtractor) Extract(text Text) *Entropies {
	return e.ExtractParts(e.grouper.Parts(e.tokenizer.Tokens(text.Contents())))
}

// ExtractParts accumulates entropies over already grouped parts.
func (e *EntropiesExtractor) ExtractParts(parts iter.Seq[[]tokenizer.Token]) *Entropies {
	sumFreqs := make(map[Key]float64)
	sumFreqsLog := make(map[Key]float64)
	total := 0
	for part := range parts {
		partFreqs, _ := frequencies(slices.Values(part))
		for k, f := range partFreqs {
			sumFreqs[k] += f
			sumFreqsLog[k] += f * math.Log(f)
		}
		total++
	}
	return &Entropies{extractor: e.id, sumFreqs: sumFreqs, sumFreqsLog: sumFreqsLog, total: total}
}

func (e *EntropiesExtractor) FeatureKeys(vocabulary []tokenizer.Token) []Key {
	return TokenKeys(vocabulary)
}

// PairwiseAssociationExtractor slides a weighting window over the tokens
// and credits each (center, neighbour) pair with the neighbour's weight.
type PairwiseAssociationExtractor struct {
	tokenizer tokenizer.Tokenizer
	grouper   *grouper.Sliding
	weights   Weights
	id        string
}

// NewPairwiseAssociationExtractor takes validated weights, so the odd
// window length is guaranteed at construction.
func NewPairwiseAssociationExtractor(tok tokenizer.Tokenizer, weights Weights) (*PairwiseAssociationExtractor, error) {
	g, err := grouper.NewSliding(weights.Len())
	if err != nil {
		return nil, err
	}
	return &PairwiseAssociationExtractor{
		tokenizer: tok,
		grouper:   g,
		weights:   weights,
		id:        extractorID("PairwiseAssociation", tok.ID(), g.ID(), weights.String()),
	}, nil
}

func (e *PairwiseAssociationExtractor) ID() string                     { return e.id }
func (e *PairwiseAssociationExtractor) Tokenizer() tokenizer.Tokenizer { return e.tokenizer }
func (e *PairwiseAssociationExtractor) Weights() Weights               { return e.weights }

func (e *PairwiseAssociationExtractor) Extract(text Text) *PairwiseAssociation {
	return e.ExtractTokens(e.tokenizer.Tokens(text.Contents()))
}

func (e *PairwiseAssociationExtractor) ExtractTokens(tokens iter.Seq[tokenizer.Token]) *PairwiseAssociation {
	entries := make(map[Key]float64)
	total := 0
	center := e.weights.Center()
	for window := range e.grouper.Parts(tokens) {
		for j, other := range window {
			if j == center {
				continue
			}
			entries[PairKey(window[center], other)] += e.weights.At(j)
			total++
		}
	}
	return &PairwiseAssociation{extractor: e.id, entries: entries, total: total}
}

// FeatureKeys is the full cartesian product of the vocabulary.
func (e *PairwiseAssociationExtractor) FeatureKeys(vocabulary []tokenizer.Token) []Key {
	keys := make([]Key, 0, len(vocabulary)*len(vocabulary))
	for _, center := range vocabulary {
		for _, other := range vocabulary {
			keys = append(keys, PairKey(center, other))
		}
	}
	return keys
}
