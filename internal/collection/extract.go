// Package collection applies an extractor across a corpus and rolls the
// per-document feature sets up into per-author and corpus-wide aggregates.
package collection

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/metrics"
)

// EventPublisher receives one FeaturesExtracted event per document.
// *kafka.Producer satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// FeaturesExtracted is the Kafka payload announcing a computed feature set.
type FeaturesExtracted struct {
	DocumentID  string    `json:"document_id"`
	Author      string    `json:"author"`
	ExtractorID string    `json:"extractor_id"`
	Features    int       `json:"features"`
	TotalCounts int       `json:"total_counts"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Options tune collection-wide extraction. The zero value extracts serially
// with no events and no metrics.
type Options struct {
	// Workers above one extracts documents concurrently.
	Workers   int
	Publisher EventPublisher
	Metrics   *metrics.Metrics
	// Label names the extractor kind in metrics, e.g. "frequencies".
	Label string
}

func (o Options) label() string {
	if o.Label == "" {
		return "features"
	}
	return o.Label
}

// Extract returns one feature set per document, in collection order. The
// result is the same whether documents are extracted serially or in
// parallel. Event publishing failures are logged and do not fail the run.
func Extract[S features.Set[S]](ctx context.Context, coll *corpus.Collection, ext features.Extractor[S], opts Options) ([]S, error) {
	docs := coll.Documents()
	results := make([]S, len(docs))
	log := logger.FromContext(ctx).With("component", "collection-extractor")
	start := time.Now()

	extractOne := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		done := opts.Metrics.TrackInFlight()
		began := time.Now()
		set := ext.Extract(docs[i])
		opts.Metrics.ObserveExtraction(opts.label(), time.Since(began))
		done()
		results[i] = set

		if opts.Publisher != nil {
			err := opts.Publisher.Publish(ctx, kafka.Event{
				Key: docs[i].ID(),
				Value: FeaturesExtracted{
					DocumentID:  docs[i].ID(),
					Author:      docs[i].Author(),
					ExtractorID: set.ExtractorID(),
					Features:    set.Len(),
					TotalCounts: set.TotalCounts(),
					ExtractedAt: time.Now().UTC(),
				},
			})
			opts.Metrics.EventPublished(err)
			if err != nil {
				log.Warn("features event not published", "document", docs[i].ID(), "error", err)
			}
		}
		return nil
	}

	workers := max(opts.Workers, 1)
	if workers == 1 {
		for i := range docs {
			if err := extractOne(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range docs {
			g.Go(func() error { return extractOne(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	log.Info("collection extracted",
		"extractor", ext.ID(),
		"documents", len(docs),
		"workers", workers,
		"elapsed", time.Since(start),
	)
	return results, nil
}
