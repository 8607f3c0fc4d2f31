package corpus

import (
	"math/rand/v2"
	"slices"

	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Collection is an ordered set of documents indexed by author. Authors are
// listed in the order their first document appears. A Collection is never
// mutated after construction.
type Collection struct {
	docs     []Document
	authors  []string
	byAuthor map[string][]Document
}

// NewCollection rejects duplicate document ids, since extraction results
// are keyed by id.
func NewCollection(docs ...Document) (*Collection, error) {
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		if _, dup := seen[d.ID()]; dup {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, "duplicate document id %q", d.ID())
		}
		seen[d.ID()] = struct{}{}
	}
	return newCollection(slices.Clone(docs)), nil
}

func newCollection(docs []Document) *Collection {
	c := &Collection{docs: docs, byAuthor: make(map[string][]Document)}
	for _, d := range docs {
		a := d.Author()
		if _, ok := c.byAuthor[a]; !ok {
			c.authors = append(c.authors, a)
		}
		c.byAuthor[a] = append(c.byAuthor[a], d)
	}
	return c
}

func (c *Collection) Len() int { return len(c.docs) }

func (c *Collection) Documents() []Document { return slices.Clone(c.docs) }

func (c *Collection) Authors() []string { return slices.Clone(c.authors) }

// ByAuthor returns the documents of author in collection order, or nil.
func (c *Collection) ByAuthor(author string) []Document {
	return slices.Clone(c.byAuthor[author])
}

func (c *Collection) Filter(keep func(Document) bool) *Collection {
	var docs []Document
	for _, d := range c.docs {
		if keep(d) {
			docs = append(docs, d)
		}
	}
	return newCollection(docs)
}

// Partition splits the collection into the documents matching cond and
// the rest, both in collection order.
func (c *Collection) Partition(cond func(Document) bool) (matching, rest *Collection) {
	var in, out []Document
	for _, d := range c.docs {
		if cond(d) {
			in = append(in, d)
		} else {
			out = append(out, d)
		}
	}
	return newCollection(in), newCollection(out)
}

// OnlyAuthorsWithAtLeast keeps the documents of authors with n or more
// documents.
func (c *Collection) OnlyAuthorsWithAtLeast(n int) *Collection {
	return c.Filter(func(d Document) bool {
		return len(c.byAuthor[d.Author()]) >= n
	})
}

// SeparateAtMostPerAuthor takes the first n documents of every author and
// returns them alongside the remainder.
func (c *Collection) SeparateAtMostPerAuthor(n int) (selected, rest *Collection) {
	taken := make(map[string]int)
	return c.Partition(func(d Document) bool {
		if taken[d.Author()] < n {
			taken[d.Author()]++
			return true
		}
		return false
	})
}

// Sample draws n documents without replacement using rng, keeping
// collection order. Asking for more documents than exist is an error.
func (c *Collection) Sample(n int, rng *rand.Rand) (*Collection, error) {
	if n < 0 || n > len(c.docs) {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, "cannot sample %d of %d documents", n, len(c.docs))
	}
	picked := rng.Perm(len(c.docs))[:n]
	slices.Sort(picked)
	docs := make([]Document, n)
	for i, idx := range picked {
		docs[i] = c.docs[idx]
	}
	return newCollection(docs), nil
}

// Shuffle returns the documents in an order drawn from rng.
func (c *Collection) Shuffle(rng *rand.Rand) *Collection {
	docs := slices.Clone(c.docs)
	rng.Shuffle(len(docs), func(i, j int) { docs[i], docs[j] = docs[j], docs[i] })
	return newCollection(docs)
}
