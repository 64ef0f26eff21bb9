// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package country

import (
	"context"
	"log/slog"
	"time"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
)

// JSONCache is the subset of [cache.JSONCache] used by [CachedRepository].
type JSONCache interface {
	Get(context context.Context, key string, target any) (bool, error)
	Set(context context.Context, key string, value any, ttl time.Duration) error
	Delete(context context.Context, keys ...string) error
}

// CachedRepository is a read-through Redis cache in front of another [Repository].
//
// Only successful reads of active countries are cached. Cache failures are
// logged and the call falls through to the wrapped repository.
type CachedRepository struct {
	next   Repository
	cache  JSONCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with a cache whose entries live for ttl.
func NewCachedRepository(next Repository, cache JSONCache, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{next: next, cache: cache, ttl: ttl, logger: logger}
}

// FindActiveByCode serves from cache, falling back to the wrapped repository.
func (repository *CachedRepository) FindActiveByCode(context context.Context, code string) (*Country, error) {
	key := constants.RedisPrefixCountry + code

	var cached Country
	if found := repository.read(context, key, &cached); found {
		return &cached, nil
	}

	c, err := repository.next.FindActiveByCode(context, code)
	if err != nil {
		return nil, err
	}

	repository.write(context, key, c)
	return c, nil
}

// ListActive serves the full active list from cache when possible.
func (repository *CachedRepository) ListActive(context context.Context) ([]*Country, error) {
	var cached []*Country
	if found := repository.read(context, constants.RedisKeyActiveCountries, &cached); found {
		return cached, nil
	}

	countries, err := repository.next.ListActive(context)
	if err != nil {
		return nil, err
	}

	repository.write(context, constants.RedisKeyActiveCountries, countries)
	return countries, nil
}

// Counts is not cached; statistics are cached one level up.
func (repository *CachedRepository) Counts(context context.Context) (Counts, error) {
	return repository.next.Counts(context)
}

// Upsert writes through and evicts the affected entries.
func (repository *CachedRepository) Upsert(context context.Context, country *Country) error {
	if err := repository.next.Upsert(context, country); err != nil {
		return err
	}

	err := repository.cache.Delete(context, constants.RedisPrefixCountry+country.Code, constants.RedisKeyActiveCountries)
	if err != nil {
		repository.logger.WarnContext(context, "country_cache_evict_failed", slog.String("code", country.Code), slog.Any("error", err))
	}
	return nil
}

func (repository *CachedRepository) read(context context.Context, key string, target any) bool {
	found, err := repository.cache.Get(context, key, target)
	if err != nil {
		repository.logger.WarnContext(context, "country_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return found
}

func (repository *CachedRepository) write(context context.Context, key string, value any) {
	if err := repository.cache.Set(context, key, value, repository.ttl); err != nil {
		repository.logger.WarnContext(context, "country_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}
