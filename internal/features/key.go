package features

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/tokenizer"
)

// Key identifies a feature: a single token, or an ordered pair of tokens for
// pairwise association.
type Key struct {
	Head tokenizer.Token `json:"h"`
	Tail tokenizer.Token `json:"t,omitempty"`
	Pair bool            `json:"p,omitempty"`
}

func TokenKey(t tokenizer.Token) Key {
	return Key{Head: t}
}

func PairKey(center, other tokenizer.Token) Key {
	return Key{Head: center, Tail: other, Pair: true}
}

func (k Key) String() string {
	if k.Pair {
		return fmt.Sprintf("(%s,%s)", k.Head, k.Tail)
	}
	return string(k.Head)
}

// Compare orders token keys before pair keys, then lexicographically.
func Compare(a, b Key) int {
	if a.Pair != b.Pair {
		if a.Pair {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.Head, b.Head); c != 0 {
		return c
	}
	return cmp.Compare(a.Tail, b.Tail)
}

// TokenKeys wraps every token in a token key, preserving order.
func TokenKeys(tokens []tokenizer.Token) []Key {
	keys := make([]Key, len(tokens))
	for i, t := range tokens {
		keys[i] = TokenKey(t)
	}
	return keys
}

func sortedKeys[V any](m map[Key]V) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, Compare)
	return keys
}
