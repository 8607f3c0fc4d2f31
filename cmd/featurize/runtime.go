package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/collection"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/encoder"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/featurecache"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/postgres"
)

// runtime owns the optional backends a command may use and releases them
// in reverse order of acquisition.
type runtime struct {
	cfg      *config.Config
	metrics  *metrics.Metrics
	cache    featurecache.Store
	producer *kafka.Producer
	health   *health.Checker
	closers  []func() error
}

func newRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	rt := &runtime{cfg: cfg}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rt.metrics = metrics.New(reg)
		rt.health = health.NewChecker()
		shutdown := metrics.StartServer(cfg.Metrics.Port, reg, rt.health)
		rt.closers = append(rt.closers, func() error {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return shutdown(shutdownCtx)
		})
	}

	cache, err := featurecache.Open(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("opening feature cache: %w", err)
	}
	if cache != nil {
		rt.cache = cache
		rt.closers = append(rt.closers, cache.Close)
		if rt.health != nil {
			rt.health.RegisterOptional(cache.Name(), func(ctx context.Context) error {
				_, err := cache.Get(ctx, "health-probe")
				if errors.Is(err, apperrors.ErrCacheMiss) {
					return nil
				}
				return err
			})
		}
		slog.Info("feature cache enabled", "backend", cache.Name())
	}

	if cfg.Kafka.Enabled {
		rt.producer = kafka.NewProducer(cfg.Kafka)
		rt.closers = append(rt.closers, rt.producer.Close)
		slog.Info("publishing extraction events", "topic", cfg.Kafka.Topic)
	}
	return rt, nil
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			slog.Error("failed to release resource", "error", err)
		}
	}
	rt.closers = nil
}

// runContext tags every log line of one command invocation with a run id.
func runContext(ctx context.Context) context.Context {
	return logger.WithRun(ctx, uuid.NewString())
}

func (rt *runtime) options(label string) collection.Options {
	opts := collection.Options{
		Workers: rt.cfg.Features.Workers,
		Metrics: rt.metrics,
		Label:   label,
	}
	if rt.producer != nil {
		opts.Publisher = rt.producer
	}
	return opts
}

// vocabularyOptions carries the configured count pruning into vocabulary
// inference.
func (rt *runtime) vocabularyOptions() []encoder.VocabularyOption {
	low, high, ok := rt.cfg.Features.PruneBounds()
	if !ok {
		return nil
	}
	return []encoder.VocabularyOption{encoder.WithQuantilePruning(low, high)}
}

func memoize[S any](rt *runtime, ext features.Extractor[S]) features.Extractor[S] {
	return featurecache.Memoize(ext, rt.cache, rt.metrics)
}

// loadCorpus returns the training and testing collections. Without an
// explicit testing set, up to HoldoutPerAuthor books per author are held
// out of a seeded shuffle of the training set.
func (rt *runtime) loadCorpus(ctx context.Context) (training, testing *corpus.Collection, err error) {
	c := rt.cfg.Corpus

	var all *corpus.Collection
	switch c.Source {
	case "postgres":
		db, err := postgres.New(ctx, rt.cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		defer db.Close()
		if all, err = corpus.NewStore(db).LoadCollection(ctx); err != nil {
			return nil, nil, err
		}
	default:
		if c.TrainingDir == "" {
			return nil, nil, apperrors.New(apperrors.ErrConfiguration, "corpus.trainingDir is required")
		}
		if all, err = corpus.LoadDir(c.TrainingDir); err != nil {
			return nil, nil, err
		}
		if c.TestingDir != "" {
			testing, err = corpus.LoadDir(c.TestingDir)
			if err != nil {
				return nil, nil, err
			}
			return all, testing, nil
		}
	}

	training, testing = holdOut(all, c.HoldoutPerAuthor, c.Seed)
	slog.Info("corpus split",
		"training", training.Len(),
		"testing", testing.Len(),
		"authors", len(training.Authors()),
	)
	return training, testing, nil
}

// holdOut keeps only authors with more than n books so that every held out
// author is also present in training.
func holdOut(all *corpus.Collection, n int, seed int64) (training, testing *corpus.Collection) {
	if n <= 0 {
		return all, all.Filter(func(corpus.Document) bool { return false })
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	shuffled := all.OnlyAuthorsWithAtLeast(n + 1).Shuffle(rng)
	testing, training = shuffled.SeparateAtMostPerAuthor(n)
	return training, testing
}
