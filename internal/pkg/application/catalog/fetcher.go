package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/atmodata/api-dataaccess/internal/pkg/infrastructure/storage"
	"github.com/rs/zerolog"
)

// Fetcher wraps a provider's catalog queries with a cache keyed by
// (provider, entity, variable). On a fresh hit the network is skipped
// entirely; on a miss the live result is written back with the
// configured TTL before being returned.
//
// No single flight de-duplication is attempted: concurrent callers
// missing the same key may both query the remote catalog. The second
// write simply overwrites the first.
type Fetcher struct {
	provider Provider
	cache    storage.Store
	ttl      time.Duration
	log      zerolog.Logger
}

func NewFetcher(provider Provider, cache storage.Store, ttl time.Duration, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		log:      logger,
	}
}

func (f *Fetcher) Provider() Provider {
	return f.provider
}

func (f *Fetcher) cacheKey(entityID, variable string) string {
	return fmt.Sprintf("%s/%s/%s", f.provider.Name(), entityID, variable)
}

// Datasets returns the catalog query result for one
// (entity, variable) key, from cache when fresh.
func (f *Fetcher) Datasets(ctx context.Context, entityID, variable string) ([]domain.Dataset, error) {
	key := f.cacheKey(entityID, variable)

	if f.cache != nil {
		if cached, ok := f.cache.Get(key); ok {
			if datasets, ok := cached.([]domain.Dataset); ok {
				return datasets, nil
			}
		}
	}

	datasets, err := f.provider.Datasets(ctx, entityID, variable)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Set(key, datasets, f.ttl)
	}

	return datasets, nil
}

// Warm queries every (entity, variable) pair to populate the cache.
// This is the explicit best effort bulk mode: individual failures are
// logged and skipped so that one unreachable key cannot abort the
// remaining ones.
func (f *Fetcher) Warm(ctx context.Context, entityIDs, variables []string) {
	for _, entityID := range entityIDs {
		for _, variable := range variables {
			datasets, err := f.provider.Datasets(ctx, entityID, variable)
			if err != nil {
				f.log.Warn().Err(err).Msgf(
					"failed to warm cache for %s", f.cacheKey(entityID, variable),
				)
				continue
			}
			if f.cache != nil {
				f.cache.Set(f.cacheKey(entityID, variable), datasets, f.ttl)
			}
		}
		f.log.Info().Msgf("cache warmed for entity %s", entityID)
	}
}
