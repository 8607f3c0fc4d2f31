package classify

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/collection"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/encoder"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/logger"
)

// Experiment trains Model on Training and predicts the authors of Testing.
type Experiment[S encoder.Encodable[S]] struct {
	Extractor features.Extractor[S]
	Training  *corpus.Collection
	Testing   *corpus.Collection
	Model     Model
	Options   collection.Options
	// Vocabulary adjusts how the feature vocabulary is inferred from Training.
	Vocabulary []encoder.VocabularyOption
}

// Prediction is the predicted author of one testing document.
type Prediction struct {
	DocumentID string `json:"document_id"`
	Actual     string `json:"actual"`
	Predicted  string `json:"predicted"`
}

type Result struct {
	Predictions []Prediction `json:"predictions"`
	Correct     int          `json:"correct"`
	Accuracy    float64      `json:"accuracy"`
}

// Run fits the vocabulary and author labels on the training collection.
// Testing documents by authors absent from training are predicted like any
// other document and count as wrong.
func (e *Experiment[S]) Run(ctx context.Context) (*Result, error) {
	log := logger.FromContext(ctx).With("component", "experiment")

	enc, err := encoder.FitCollectionEncoder(ctx, e.Extractor, e.Training, e.Options, e.Vocabulary...)
	if err != nil {
		return nil, fmt.Errorf("fitting encoder: %w", err)
	}
	train, err := enc.Encode(ctx, e.Training)
	if err != nil {
		return nil, fmt.Errorf("encoding training collection: %w", err)
	}
	if err := e.Model.Fit(train.X, train.Y); err != nil {
		return nil, fmt.Errorf("fitting model: %w", err)
	}

	x, err := enc.Features.Encode(ctx, e.Testing)
	if err != nil {
		return nil, fmt.Errorf("encoding testing collection: %w", err)
	}
	labels, err := e.Model.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("predicting: %w", err)
	}
	authors, err := enc.Authors.DecodeMany(labels)
	if err != nil {
		return nil, err
	}

	res := &Result{Predictions: make([]Prediction, len(authors))}
	for i, d := range e.Testing.Documents() {
		res.Predictions[i] = Prediction{DocumentID: d.ID(), Actual: d.Author(), Predicted: authors[i]}
		if d.Author() == authors[i] {
			res.Correct++
		}
	}
	if len(authors) > 0 {
		res.Accuracy = float64(res.Correct) / float64(len(authors))
	}
	log.Info("experiment finished",
		"training", e.Training.Len(),
		"testing", e.Testing.Len(),
		"features", enc.Features.Encoder().Len(),
		"accuracy", res.Accuracy,
	)
	return res, nil
}
