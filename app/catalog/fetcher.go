package catalog

import (
	"context"
	"time"

	"github.com/shashiranjanraj/dukaan/pkg/cache"
	"github.com/shashiranjanraj/dukaan/pkg/httpx"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
	"github.com/shashiranjanraj/dukaan/pkg/metrics"
)

// cacheKey is where raw feed text lives in redis between reloads.
const cacheKey = "dukaan:feed:raw"

// Fetcher pulls raw feed text over HTTP and installs it into a Store.
// Overlapping refreshes are not serialised: the last response to arrive
// wins, which is acceptable for rare, user-triggered reloads.
type Fetcher struct {
	store *Store
	url   string
	ttl   time.Duration
}

// NewFetcher fetches url into store, caching raw responses for ttl
// (zero disables the cache).
func NewFetcher(store *Store, url string, ttl time.Duration) *Fetcher {
	return &Fetcher{store: store, url: url, ttl: ttl}
}

// Refresh fetches (or reuses cached) feed text and loads it. It returns
// the category list from the load.
func (f *Fetcher) Refresh(ctx context.Context) ([]string, error) {
	start := time.Now()

	raw, err := f.fetch(ctx)
	if err != nil {
		metrics.ObserveFeedLoad("error", start)
		return nil, err
	}

	categories, err := f.store.Load(raw)
	if err != nil {
		// A cached response that no longer parses is worse than no cache.
		_ = cache.Forget(cacheKey)
		metrics.ObserveFeedLoad("error", start)
		return nil, err
	}

	metrics.ObserveFeedLoad("ok", start)
	logger.Info("catalog refreshed", "products", len(f.store.Products()), "categories", len(categories))
	return categories, nil
}

func (f *Fetcher) fetch(ctx context.Context) (string, error) {
	if f.ttl > 0 {
		if raw, ok := cache.Get(cacheKey); ok {
			logger.Debug("feed served from cache")
			return raw, nil
		}
	}

	resp, err := httpx.Get(f.url).
		WithContext(ctx).
		Timeout(15 * time.Second).
		Retry(3, 500*time.Millisecond).
		Send()
	if err != nil {
		return "", err
	}
	if err := resp.Throw(); err != nil {
		return "", err
	}

	raw := resp.Text()
	if f.ttl > 0 {
		if err := cache.Set(cacheKey, raw, f.ttl); err != nil {
			logger.Warn("feed cache write failed", "error", err)
		}
	}
	return raw, nil
}
