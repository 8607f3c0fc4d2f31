package collection

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Hierarchical holds the feature sets of a collection at three levels: per
// document, per author (documents combined in collection order) and in
// total (authors combined in first-seen order). It is read-only once built.
type Hierarchical[S features.Set[S]] struct {
	documentIDs []string
	authors     []string
	byDocument  map[string]S
	byAuthor    map[string]S
	total       S
}

// BuildHierarchical extracts every document of coll and reduces the sets
// with Combine. An empty collection has no total and fails with
// ErrEmptyInput.
func BuildHierarchical[S features.Set[S]](ctx context.Context, coll *corpus.Collection, ext features.Extractor[S], opts Options) (*Hierarchical[S], error) {
	if coll.Len() == 0 {
		return nil, apperrors.New(apperrors.ErrEmptyInput, "cannot aggregate features of an empty collection")
	}
	sets, err := Extract(ctx, coll, ext, opts)
	if err != nil {
		return nil, fmt.Errorf("extracting collection: %w", err)
	}

	h := &Hierarchical[S]{
		authors:    coll.Authors(),
		byDocument: make(map[string]S, len(sets)),
		byAuthor:   make(map[string]S),
	}
	docs := coll.Documents()
	for i, d := range docs {
		h.documentIDs = append(h.documentIDs, d.ID())
		h.byDocument[d.ID()] = sets[i]
	}

	authorSets := make([]S, 0, len(h.authors))
	for _, author := range h.authors {
		var own []S
		for _, d := range coll.ByAuthor(author) {
			own = append(own, h.byDocument[d.ID()])
		}
		combined, err := Reduce(own)
		if err != nil {
			return nil, fmt.Errorf("combining features of author %q: %w", author, err)
		}
		h.byAuthor[author] = combined
		authorSets = append(authorSets, combined)
	}

	h.total, err = Reduce(authorSets)
	if err != nil {
		return nil, fmt.Errorf("combining author features: %w", err)
	}
	return h, nil
}

// Reduce folds sets left to right with Combine.
func Reduce[S features.Set[S]](sets []S) (S, error) {
	var zero S
	if len(sets) == 0 {
		return zero, apperrors.New(apperrors.ErrEmptyInput, "nothing to combine")
	}
	acc := sets[0]
	for _, s := range sets[1:] {
		next, err := acc.Combine(s)
		if err != nil {
			return zero, err
		}
		acc = next
	}
	return acc, nil
}

func (h *Hierarchical[S]) Document(id string) (S, bool) {
	s, ok := h.byDocument[id]
	return s, ok
}

func (h *Hierarchical[S]) Author(author string) (S, bool) {
	s, ok := h.byAuthor[author]
	return s, ok
}

func (h *Hierarchical[S]) Total() S { return h.total }

// DocumentIDs lists documents in collection order.
func (h *Hierarchical[S]) DocumentIDs() []string {
	return append([]string(nil), h.documentIDs...)
}

func (h *Hierarchical[S]) Authors() []string {
	return append([]string(nil), h.authors...)
}

// DocumentSets returns the per-document sets in collection order.
func (h *Hierarchical[S]) DocumentSets() []S {
	out := make([]S, len(h.documentIDs))
	for i, id := range h.documentIDs {
		out[i] = h.byDocument[id]
	}
	return out
}
