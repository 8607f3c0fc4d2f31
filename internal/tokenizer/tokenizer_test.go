package tokenizer

import (
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

func collect(tok Tokenizer, text string) []Token {
	return slices.Collect(tok.Tokens(text))
}

func TestBasicProcessesASentence(t *testing.T) {
	got := collect(Basic{}, "This, I think; is a n1c3.sentence...")
	assert.Equal(t, []Token{"this", "think", "sentence"}, got)
}

func TestBasicNormalisesUnicode(t *testing.T) {
	got := collect(Basic{}, "ÉCOLE Straße ﬁnal")
	assert.Equal(t, []Token{"école", "straße", "final"}, got)
}

func TestBasicIsRestartable(t *testing.T) {
	seq := Basic{}.Tokens("books about animals")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Equal(t, []Token{"books", "about", "animals"}, first)
}

func TestSequenceSplitsOnWhitespace(t *testing.T) {
	assert.Equal(t, []Token{"a", "b", "c"}, collect(Sequence{}, " a  b\tc\n"))
}

func TestFilteringRestrictsWords(t *testing.T) {
	tok := NewFiltering(Basic{}, []Token{"two", "three"})
	got := collect(tok, "one two one two three one two four")
	assert.Equal(t, []Token{"two", "two", "three", "two"}, got)
	assert.Equal(t, FixedVocabulary, tok.Vocabulary().Kind())
	assert.Equal(t, []Token{"three", "two"}, tok.Vocabulary().Tokens())
}

func TestCollapsingKeepsDensity(t *testing.T) {
	tok, err := NewCollapsing(Basic{}, []Token{"two", "three"}, "blah")
	require.NoError(t, err)

	text := "one two one two three one two four"
	got := collect(tok, text)
	assert.Equal(t, []Token{"blah", "two", "blah", "two", "three", "blah", "two", "blah"}, got)

	filtered := collect(NewFiltering(Basic{}, []Token{"two", "three"}), text)
	assert.Len(t, got, 8)
	assert.Len(t, filtered, 4)

	assert.True(t, tok.Vocabulary().Contains("blah"))
	assert.Equal(t, 3, tok.Vocabulary().Len())
}

func TestCollapsingRejectsFillInsideVocabulary(t *testing.T) {
	_, err := NewCollapsing(Basic{}, []Token{"two", "three"}, "two")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestHashingIsDeterministicAndBounded(t *testing.T) {
	tok, err := NewHashing(Sequence{}, 16)
	require.NoError(t, err)

	first := collect(tok, "alpha beta gamma alpha")
	second := collect(tok, "alpha beta gamma alpha")
	assert.Equal(t, first, second)
	assert.Equal(t, first[0], first[3])
	for _, bucket := range first {
		n, err := strconv.Atoi(string(bucket))
		require.NoError(t, err)
		assert.True(t, n >= 0 && n < 16)
		assert.True(t, tok.Vocabulary().Contains(bucket))
	}
	assert.Equal(t, 16, tok.Vocabulary().Len())
}

func TestHashingRejectsNonPositiveBuckets(t *testing.T) {
	_, err := NewHashing(Sequence{}, 0)
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestStemmingWrapsInner(t *testing.T) {
	got := collect(NewStemming(Basic{}), "running classified books")
	assert.Equal(t, []Token{"runn", "classifi", "book"}, got)
}

func TestStem(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"relational", "relate"},
		{"agreements", "agreement"},
		{"happiness", "happy"},
		{"books", "book"},
		{"as", "as"},
		{"glass", "glass"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.word))
		})
	}
}

func TestVocabularyCheck(t *testing.T) {
	fixed := Fixed("one", "two")
	assert.NoError(t, fixed.Check("one"))
	assert.True(t, errors.Is(fixed.Check("three"), apperrors.ErrUnknownKey))

	dynamic := Dynamic()
	assert.NoError(t, dynamic.Check("anything"))
	assert.Nil(t, dynamic.Tokens())
	assert.Equal(t, "dynamic", dynamic.Kind().String())
}

func TestIDsAreStable(t *testing.T) {
	a := NewFiltering(Basic{}, []Token{"one", "two", "three"})
	b := NewFiltering(Basic{}, []Token{"three", "two", "one"})
	assert.Equal(t, a.ID(), b.ID())

	c := NewFiltering(Sequence{}, []Token{"one", "two", "three"})
	assert.NotEqual(t, a.ID(), c.ID())
	assert.Equal(t, "Stemming(Basic)", NewStemming(Basic{}).ID())
}

func BenchmarkBasicTokens(b *testing.B) {
	text := `Information retrieval systems form the backbone of modern search
        infrastructure. These systems combine tokenization, stemming, and stop word
        removal to normalize text into searchable terms.`
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		for range (Basic{}).Tokens(text) {
		}
	}
}
