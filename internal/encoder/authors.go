package encoder

import (
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/indexer"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// AuthorEncoder labels the authors of a training collection 0..n-1 in
// first-seen order.
type AuthorEncoder struct {
	index *indexer.Indexer[string]
}

func NewAuthorEncoder(training *corpus.Collection) *AuthorEncoder {
	return &AuthorEncoder{index: indexer.New(training.Authors()...)}
}

func (a *AuthorEncoder) Len() int { return a.index.Len() }

func (a *AuthorEncoder) Authors() []string { return a.index.Keys() }

func (a *AuthorEncoder) Encode(author string) (int, error) {
	label, err := a.index.Encode(author)
	if err != nil {
		return 0, apperrors.Newf(apperrors.ErrAuthorNotFound, "author %q was not in the training collection", author)
	}
	return label, nil
}

func (a *AuthorEncoder) Decode(label int) (string, error) {
	author, err := a.index.Decode(label)
	if err != nil {
		return "", apperrors.Newf(apperrors.ErrAuthorNotFound, "no training author has label %d", label)
	}
	return author, nil
}

// EncodeDocuments labels docs by author, failing on the first unseen one.
func (a *AuthorEncoder) EncodeDocuments(docs []corpus.Document) ([]int, error) {
	labels := make([]int, len(docs))
	for i, d := range docs {
		label, err := a.Encode(d.Author())
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}

func (a *AuthorEncoder) DecodeMany(labels []int) ([]string, error) {
	authors := make([]string, len(labels))
	for i, l := range labels {
		author, err := a.Decode(l)
		if err != nil {
			return nil, err
		}
		authors[i] = author
	}
	return authors, nil
}
