package featurecache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/metrics"
)

const storeTimeout = 5 * time.Second

// identified is satisfied by corpus documents.
type identified interface {
	ID() string
}

// Memoized wraps an extractor with a cache. It has the same identity as the
// wrapped extractor, so combining cached and fresh sets is allowed. Cache
// failures are logged and fall back to extraction.
type Memoized[S any] struct {
	inner   features.Extractor[S]
	store   Store
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Memoize returns ext itself when store is nil.
func Memoize[S any](ext features.Extractor[S], store Store, m *metrics.Metrics) features.Extractor[S] {
	if store == nil {
		return ext
	}
	return &Memoized[S]{
		inner:   ext,
		store:   store,
		metrics: m,
		logger:  slog.Default().With("component", "feature-cache", "backend", store.Name()),
	}
}

func (c *Memoized[S]) ID() string                     { return c.inner.ID() }
func (c *Memoized[S]) Tokenizer() tokenizer.Tokenizer { return c.inner.Tokenizer() }

func (c *Memoized[S]) FeatureKeys(vocabulary []tokenizer.Token) []features.Key {
	return c.inner.FeatureKeys(vocabulary)
}

func (c *Memoized[S]) Extract(text features.Text) S {
	key := cacheKey(c.inner.ID(), text)
	if set, ok := c.lookup(key); ok {
		return set
	}
	v, _, _ := c.group.Do(key, func() (any, error) {
		if set, ok := c.lookup(key); ok {
			return set, nil
		}
		set := c.inner.Extract(text)
		c.save(key, set)
		return set, nil
	})
	return v.(S)
}

func (c *Memoized[S]) lookup(key string) (S, bool) {
	var set S
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCacheMiss) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.metrics.CacheMiss(c.store.Name())
		return set, false
	}
	if err := json.Unmarshal(data, &set); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.metrics.CacheMiss(c.store.Name())
		return set, false
	}
	c.metrics.CacheHit(c.store.Name())
	c.logger.Debug("cache hit", "key", key)
	return set, true
}

func (c *Memoized[S]) save(key string, set S) {
	data, err := json.Marshal(set)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := c.store.Set(ctx, key, data); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// cacheKey hashes the extractor identity with the document id, or with the
// text itself for anonymous texts.
func cacheKey(extractorID string, text features.Text) string {
	doc := ""
	if d, ok := text.(identified); ok {
		doc = "id:" + d.ID()
	} else {
		sum := sha256.Sum256([]byte(text.Contents()))
		doc = fmt.Sprintf("text:%x", sum)
	}
	hash := sha256.Sum256([]byte(extractorID + "|" + doc))
	return fmt.Sprintf("%x", hash[:16])
}
