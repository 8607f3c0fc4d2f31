package tokenizer

import (
	"fmt"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/identity"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// VocabularyKind tells whether a tokenizer can emit any token or only the
// members of a closed set.
type VocabularyKind int

const (
	DynamicVocabulary VocabularyKind = iota
	FixedVocabulary
)

func (k VocabularyKind) String() string {
	switch k {
	case FixedVocabulary:
		return "fixed"
	default:
		return "dynamic"
	}
}

// Vocabulary is the vocabulary a tokenizer declares. The zero value is a
// dynamic vocabulary.
type Vocabulary struct {
	kind   VocabularyKind
	tokens map[Token]struct{}
}

func Dynamic() Vocabulary {
	return Vocabulary{kind: DynamicVocabulary}
}

// Fixed builds a closed vocabulary. Duplicates are ignored.
func Fixed(tokens ...Token) Vocabulary {
	set := make(map[Token]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return Vocabulary{kind: FixedVocabulary, tokens: set}
}

func (v Vocabulary) Kind() VocabularyKind { return v.kind }

// Contains reports whether t may be emitted. Dynamic vocabularies contain
// every token.
func (v Vocabulary) Contains(t Token) bool {
	if v.kind == DynamicVocabulary {
		return true
	}
	_, ok := v.tokens[t]
	return ok
}

// Check is Contains for callers that want strict rejection of tokens outside
// a fixed vocabulary.
func (v Vocabulary) Check(t Token) error {
	if v.Contains(t) {
		return nil
	}
	return apperrors.Newf(apperrors.ErrUnknownKey, "token %q is outside the fixed vocabulary", t)
}

// Len is the size of a fixed vocabulary, and 0 for a dynamic one.
func (v Vocabulary) Len() int {
	return len(v.tokens)
}

// Tokens returns the members of a fixed vocabulary in sorted order, or nil
// for a dynamic vocabulary.
func (v Vocabulary) Tokens() []Token {
	if v.kind == DynamicVocabulary {
		return nil
	}
	out := make([]Token, 0, len(v.tokens))
	for t := range v.tokens {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func (v Vocabulary) with(extra Token) Vocabulary {
	tokens := append(v.Tokens(), extra)
	return Fixed(tokens...)
}

func (v Vocabulary) describe() string {
	if v.kind == DynamicVocabulary {
		return "Dynamic"
	}
	words := make([]string, 0, len(v.tokens))
	for t := range v.tokens {
		words = append(words, string(t))
	}
	return fmt.Sprintf("Fixed(%d:%s)", len(words), identity.SetDigest(words))
}
