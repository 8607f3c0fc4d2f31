// Package tokenizer turns book text into streams of normalised tokens. The
// Basic tokenizer lower-cases and splits on non-alphanumeric boundaries;
// wrappers restrict (Filtering), collapse (Collapsing), bucket (Hashing) or
// stem (Stemming) the tokens of another tokenizer.
package tokenizer

import (
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Token is an opaque normalised unit of text. The feature engine only relies
// on its identity.
type Token string

// Tokenizer produces a token stream from raw text. Streams are restartable:
// ranging over the returned sequence twice tokenizes the text twice.
type Tokenizer interface {
	Tokens(text string) iter.Seq[Token]
	Vocabulary() Vocabulary
	ID() string
}

// FromTokens adapts an in-memory token slice to a stream.
func FromTokens(tokens []Token) iter.Seq[Token] {
	return slices.Values(tokens)
}

// FromStrings is FromTokens for plain strings.
func FromStrings(words ...string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for _, w := range words {
			if !yield(Token(w)) {
				return
			}
		}
	}
}

// Basic lower-cases text, splits it on non-alphanumeric boundaries and keeps
// purely alphabetic words longer than two runes.
type Basic struct{}

func (Basic) Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		normalized := cases.Lower(language.Und).String(norm.NFKC.String(text))
		words := strings.FieldsFunc(normalized, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, word := range words {
			if !isWord(word) {
				continue
			}
			if !yield(Token(word)) {
				return
			}
		}
	}
}

func (Basic) Vocabulary() Vocabulary { return Dynamic() }

func (Basic) ID() string { return "Basic" }

func isWord(word string) bool {
	if utf8.RuneCountInString(word) <= 2 {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Sequence splits text on whitespace without any normalisation. It is the
// identity tokenizer for pre-tokenized input.
type Sequence struct{}

func (Sequence) Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for _, field := range strings.Fields(text) {
			if !yield(Token(field)) {
				return
			}
		}
	}
}

func (Sequence) Vocabulary() Vocabulary { return Dynamic() }

func (Sequence) ID() string { return "Sequence" }
