// Package refdata serves slow-changing reference catalogs (billers per
// category, locations) through the TTL cache, so the remote catalog is hit at
// most once per staleness horizon.
package refdata

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gebv/billup/cache"
)

// BillerInfo describes one selectable biller in a category.
type BillerInfo struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// Fetcher loads a catalog from the remote source on a cache miss.
type Fetcher interface {
	FetchBillers(ctx context.Context, category string) ([]BillerInfo, error)
}

type Service struct {
	cache *cache.Cache
	fetch Fetcher
	l     *zap.Logger
}

func NewService(c *cache.Cache, fetch Fetcher) *Service {
	return &Service{
		cache: c,
		fetch: fetch,
		l:     zap.L().Named("refdata"),
	}
}

const nsBillers = "refdata:billers:"

// Billers returns the biller catalog for a category, from cache when fresh.
// A storage fault propagates; it is never misreported as expiry, which would
// turn a store outage into a stampede of remote fetches.
func (s *Service) Billers(ctx context.Context, category string) ([]BillerInfo, error) {
	key := nsBillers + category

	var cached []BillerInfo
	ok, err := s.cache.Load(key, &cached)
	if err != nil {
		return nil, errors.Wrap(err, "Failed load billers from cache")
	}
	if ok {
		return cached, nil
	}

	list, err := s.fetch.FetchBillers(ctx, category)
	if err != nil {
		return nil, errors.Wrap(err, "Failed fetch billers")
	}
	if err := s.cache.Save(key, list); err != nil {
		return nil, errors.Wrap(err, "Failed save billers to cache")
	}
	s.l.Info("Billers catalog refreshed.",
		zap.String("category", category),
		zap.Int("count", len(list)),
	)
	return list, nil
}
