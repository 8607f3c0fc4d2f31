// Package grouper splits token streams into contiguous or sliding parts for
// windowed statistics.
package grouper

import (
	"iter"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/identity"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Grouper turns a token stream into a stream of parts. Each emitted part is a
// fresh slice owned by the receiver.
type Grouper interface {
	Parts(tokens iter.Seq[tokenizer.Token]) iter.Seq[[]tokenizer.Token]
	Size() int
	ID() string
}

// Fixed emits non-overlapping chunks of Size tokens. The last chunk may be
// shorter; it is dropped only when empty.
type Fixed struct {
	size int
}

func NewFixed(size int) (*Fixed, error) {
	if size <= 0 {
		return nil, apperrors.Newf(apperrors.ErrConfiguration, "fixed grouper size must be positive, got %d", size)
	}
	return &Fixed{size: size}, nil
}

func (f *Fixed) Parts(tokens iter.Seq[tokenizer.Token]) iter.Seq[[]tokenizer.Token] {
	return func(yield func([]tokenizer.Token) bool) {
		group := make([]tokenizer.Token, 0, f.size)
		for t := range tokens {
			group = append(group, t)
			if len(group) == f.size {
				if !yield(group) {
					return
				}
				group = make([]tokenizer.Token, 0, f.size)
			}
		}
		if len(group) > 0 {
			yield(group)
		}
	}
}

func (f *Fixed) Size() int { return f.size }

func (f *Fixed) ID() string { return identity.Describe("Fixed", strconv.Itoa(f.size)) }

// Sliding emits every window of Size consecutive tokens with stride one.
// Inputs shorter than Size produce no windows.
type Sliding struct {
	size int
}

func NewSliding(size int) (*Sliding, error) {
	if size <= 0 {
		return nil, apperrors.Newf(apperrors.ErrConfiguration, "sliding grouper size must be positive, got %d", size)
	}
	return &Sliding{size: size}, nil
}

func (s *Sliding) Parts(tokens iter.Seq[tokenizer.Token]) iter.Seq[[]tokenizer.Token] {
	return func(yield func([]tokenizer.Token) bool) {
		// ring holds the last size tokens; head is the oldest one once full.
		ring := make([]tokenizer.Token, s.size)
		seen, head := 0, 0
		for t := range tokens {
			if seen < s.size {
				ring[seen] = t
				seen++
				if seen < s.size {
					continue
				}
			} else {
				ring[head] = t
				head = (head + 1) % s.size
			}
			window := make([]tokenizer.Token, 0, s.size)
			window = append(window, ring[head:]...)
			window = append(window, ring[:head]...)
			if !yield(window) {
				return
			}
		}
	}
}

func (s *Sliding) Size() int { return s.size }

func (s *Sliding) ID() string { return identity.Describe("Sliding", strconv.Itoa(s.size)) }
