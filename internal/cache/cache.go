// Package cache is a keyed query cache in front of the dashboard's list
// endpoints. Keys are request paths, so related queries can be invalidated
// together by prefix.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NamanBalaji/payouts/internal/logger"
	"github.com/NamanBalaji/payouts/internal/repository"
)

const defaultRevalidateLimit = 4

// Store persists cache entries.
type Store interface {
	Save(entry *repository.Entry) error
	Find(key string) (*repository.Entry, error)
	DeletePrefix(prefix string) ([]string, error)
}

// Fetcher loads the current value for a key from the source of truth.
type Fetcher func(ctx context.Context) (json.RawMessage, error)

// Cache serves entries from a Store and refetches them when they expire or
// are invalidated.
type Cache struct {
	store Store
	ttl   time.Duration
	limit int
	now   func() time.Time

	mu       sync.Mutex
	fetchers map[string]Fetcher
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets how long an entry is served without refetching. Zero means
// entries never expire on their own.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithRevalidateLimit caps concurrent refetches during MutatePrefix.
func WithRevalidateLimit(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache backed by store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:    store,
		limit:    defaultRevalidateLimit,
		now:      time.Now,
		fetchers: make(map[string]Fetcher),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch returns the value stored under key, calling fetch when there is no
// fresh entry. The fetcher is remembered so the key can be revalidated later.
// When a refetch fails and an expired entry exists, the expired entry is
// returned instead of the error.
func (c *Cache) Fetch(ctx context.Context, key string, fetch Fetcher) (json.RawMessage, error) {
	c.mu.Lock()
	c.fetchers[key] = fetch
	c.mu.Unlock()

	entry, err := c.store.Find(key)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Warnf("Failed to read cache entry %s: %v", key, err)
	}

	if entry != nil && c.fresh(entry) {
		logger.Debugf("Cache hit for %s", key)
		return entry.Data, nil
	}

	data, fetchErr := c.refetch(ctx, key, fetch)
	if fetchErr != nil {
		if entry != nil {
			logger.Warnf("Serving stale entry for %s: %v", key, fetchErr)
			return entry.Data, nil
		}
		return nil, fetchErr
	}

	return data, nil
}

// MutatePrefix drops every cached entry whose key starts with one of the
// prefixes and refetches the ones that have a known fetcher. It returns the
// affected keys in sorted order.
func (c *Cache) MutatePrefix(ctx context.Context, prefixes ...string) ([]string, error) {
	matched := make(map[string]struct{})

	for _, prefix := range prefixes {
		deleted, err := c.store.DeletePrefix(prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to invalidate %q: %w", prefix, err)
		}
		for _, k := range deleted {
			matched[k] = struct{}{}
		}
	}

	c.mu.Lock()
	toRefetch := make(map[string]Fetcher)
	for k, f := range c.fetchers {
		for _, prefix := range prefixes {
			if prefix != "" && strings.HasPrefix(k, prefix) {
				matched[k] = struct{}{}
				toRefetch[k] = f
				break
			}
		}
	}
	c.mu.Unlock()

	keys := make([]string, 0, len(matched))
	for k := range matched {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	logger.Infof("Invalidating %d cached queries for prefixes %v", len(keys), prefixes)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	for k, f := range toRefetch {
		g.Go(func() error {
			_, err := c.refetch(gctx, k, f)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return keys, fmt.Errorf("failed to revalidate: %w", err)
	}

	return keys, nil
}

func (c *Cache) refetch(ctx context.Context, key string, fetch Fetcher) (json.RawMessage, error) {
	data, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", key, err)
	}

	entry := &repository.Entry{Key: key, FetchedAt: c.now(), Data: data}
	if err := c.store.Save(entry); err != nil {
		logger.Warnf("Failed to store cache entry %s: %v", key, err)
	}

	return data, nil
}

func (c *Cache) fresh(entry *repository.Entry) bool {
	if c.ttl <= 0 {
		return true
	}

	return c.now().Sub(entry.FetchedAt) < c.ttl
}

// Get is a typed wrapper around Fetch that encodes and decodes values as JSON.
func Get[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var out T

	data, err := c.Fetch(ctx, key, func(ctx context.Context) (json.RawMessage, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}

	return out, nil
}
