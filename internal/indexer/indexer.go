// Package indexer assigns dense integer ids to hashable keys.
package indexer

import (
	"sync"

	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Indexer is a closed bijection between a set of keys and [0, Len()). Ids
// follow first-seen order of the keys it was built from. An Indexer is
// immutable and safe for concurrent use.
type Indexer[K comparable] struct {
	ids  map[K]int
	keys []K
}

// New builds an indexer over keys, dropping duplicates.
func New[K comparable](keys ...K) *Indexer[K] {
	idx := &Indexer[K]{ids: make(map[K]int, len(keys)), keys: make([]K, 0, len(keys))}
	for _, k := range keys {
		if _, ok := idx.ids[k]; ok {
			continue
		}
		idx.ids[k] = len(idx.keys)
		idx.keys = append(idx.keys, k)
	}
	return idx
}

func (x *Indexer[K]) Len() int { return len(x.keys) }

func (x *Indexer[K]) CanEncode(k K) bool {
	_, ok := x.ids[k]
	return ok
}

func (x *Indexer[K]) CanDecode(id int) bool {
	return id >= 0 && id < len(x.keys)
}

func (x *Indexer[K]) Encode(k K) (int, error) {
	id, ok := x.ids[k]
	if !ok {
		return 0, apperrors.Newf(apperrors.ErrUnknownKey, "%v is not indexed", k)
	}
	return id, nil
}

func (x *Indexer[K]) Decode(id int) (K, error) {
	if !x.CanDecode(id) {
		var zero K
		return zero, apperrors.Newf(apperrors.ErrIndexOutOfRange, "id %d outside [0, %d)", id, len(x.keys))
	}
	return x.keys[id], nil
}

// EncodeMany stops at the first unknown key.
func (x *Indexer[K]) EncodeMany(keys []K) ([]int, error) {
	ids := make([]int, len(keys))
	for i, k := range keys {
		id, err := x.Encode(k)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func (x *Indexer[K]) DecodeMany(ids []int) ([]K, error) {
	keys := make([]K, len(ids))
	for i, id := range ids {
		k, err := x.Decode(id)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}

// Keys returns the indexed keys in id order.
func (x *Indexer[K]) Keys() []K {
	out := make([]K, len(x.keys))
	copy(out, x.keys)
	return out
}

// Builder grows an index as keys are seen. Unlike Indexer, encoding an
// unknown key assigns it the next id. It is safe for concurrent use, but
// ids follow first-seen order only with a single writer; concurrent writers
// get unique ids in an unspecified order.
type Builder[K comparable] struct {
	mu   sync.RWMutex
	ids  map[K]int
	keys []K
}

func NewBuilder[K comparable]() *Builder[K] {
	return &Builder[K]{ids: make(map[K]int)}
}

func (b *Builder[K]) Encode(k K) int {
	b.mu.RLock()
	id, ok := b.ids[k]
	b.mu.RUnlock()
	if ok {
		return id
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if id, ok := b.ids[k]; ok {
		return id
	}
	id = len(b.keys)
	b.ids[k] = id
	b.keys = append(b.keys, k)
	return id
}

func (b *Builder[K]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.keys)
}

// Build freezes the keys seen so far. Later Encode calls on the builder do
// not affect the returned indexer.
func (b *Builder[K]) Build() *Indexer[K] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return New(b.keys...)
}
