package featurecache

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
	pkgredis "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/redis"
)

// Open builds the Store selected by cfg.Cache.Backend. The "none" backend
// yields a nil Store, which Memoize treats as no caching.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Cache.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemoryStore(cfg.Cache.TTL), nil
	case "badger":
		store, err := OpenBadgerStore(cfg.Cache.BadgerDir, cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "redis":
		client, err := pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.Cache.TTL), nil
	default:
		return nil, apperrors.Newf(apperrors.ErrConfiguration, "unknown cache backend %q", cfg.Cache.Backend)
	}
}
