package tokenizer

import (
	"iter"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/identity"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Filtering keeps only the tokens of a fixed vocabulary and drops the rest.
type Filtering struct {
	inner      Tokenizer
	vocabulary Vocabulary
}

func NewFiltering(inner Tokenizer, vocabulary []Token) *Filtering {
	return &Filtering{inner: inner, vocabulary: Fixed(vocabulary...)}
}

func (f *Filtering) Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for t := range f.inner.Tokens(text) {
			if !f.vocabulary.Contains(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func (f *Filtering) Vocabulary() Vocabulary { return f.vocabulary }

func (f *Filtering) ID() string {
	return identity.Describe("Filtering", f.inner.ID(), f.vocabulary.describe())
}

// Collapsing replaces every token outside a fixed vocabulary with a fill
// token. Unlike Filtering it preserves the token count of the text.
type Collapsing struct {
	inner      Tokenizer
	vocabulary Vocabulary
	fill       Token
}

// NewCollapsing fails if fill belongs to the vocabulary, since collapsed and
// genuine occurrences would become indistinguishable.
func NewCollapsing(inner Tokenizer, vocabulary []Token, fill Token) (*Collapsing, error) {
	vocab := Fixed(vocabulary...)
	if vocab.Contains(fill) {
		return nil, apperrors.Newf(apperrors.ErrConfiguration, "fill token %q is part of the vocabulary", fill)
	}
	return &Collapsing{inner: inner, vocabulary: vocab, fill: fill}, nil
}

func (c *Collapsing) Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for t := range c.inner.Tokens(text) {
			if !c.vocabulary.Contains(t) {
				t = c.fill
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Vocabulary includes the fill token.
func (c *Collapsing) Vocabulary() Vocabulary { return c.vocabulary.with(c.fill) }

func (c *Collapsing) Fill() Token { return c.fill }

func (c *Collapsing) ID() string {
	return identity.Describe("Collapsing", c.inner.ID(), c.vocabulary.describe(), string(c.fill))
}

// Hashing maps every token to one of a fixed number of buckets. Collisions
// are accepted; bucket tokens are the decimal bucket numbers.
type Hashing struct {
	inner   Tokenizer
	buckets uint64
}

func NewHashing(inner Tokenizer, buckets int) (*Hashing, error) {
	if buckets <= 0 {
		return nil, apperrors.Newf(apperrors.ErrConfiguration, "hash buckets must be positive, got %d", buckets)
	}
	return &Hashing{inner: inner, buckets: uint64(buckets)}, nil
}

func (h *Hashing) Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for t := range h.inner.Tokens(text) {
			if !yield(h.Bucket(t)) {
				return
			}
		}
	}
}

// Bucket returns the bucket token t is mapped to.
func (h *Hashing) Bucket(t Token) Token {
	return Token(strconv.FormatUint(xxhash.Sum64String(string(t))%h.buckets, 10))
}

func (h *Hashing) Vocabulary() Vocabulary {
	tokens := make([]Token, h.buckets)
	for i := range tokens {
		tokens[i] = Token(strconv.Itoa(i))
	}
	return Fixed(tokens...)
}

func (h *Hashing) ID() string {
	return identity.Describe("Hashing", h.inner.ID(), strconv.FormatUint(h.buckets, 10))
}

// Stemming reduces the tokens of another tokenizer with a suffix-stripping
// stemmer.
type Stemming struct {
	inner Tokenizer
}

func NewStemming(inner Tokenizer) *Stemming {
	return &Stemming{inner: inner}
}

func (s *Stemming) Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for t := range s.inner.Tokens(text) {
			stemmed := Stem(string(t))
			if stemmed == "" {
				continue
			}
			if !yield(Token(stemmed)) {
				return
			}
		}
	}
}

func (s *Stemming) Vocabulary() Vocabulary { return Dynamic() }

func (s *Stemming) ID() string {
	return identity.Describe("Stemming", s.inner.ID())
}
