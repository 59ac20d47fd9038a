package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agency_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

// Store is the slice of the sheets client the resolver needs.
type Store interface {
	ReadRange(ctx context.Context, rng string) ([][]string, error)
	Update(ctx context.Context, rng string, values [][]string) error
}

// Snapshot is the result of a settings lookup.
type Snapshot struct {
	Settings  *QuoteSettings
	CachedAt  time.Time
	FromCache bool
	// Fallback marks a response assembled from compiled-in defaults because
	// the store could not be read. Advisory only; never a failure.
	Fallback bool
}

// Resolver memoizes the parsed QuoteSettings for a bounded time window.
// Pricing must never hard-fail because the configuration store is
// unreachable: any fetch or parse failure degrades to Defaults().
type Resolver struct {
	store       Store
	configRange string
	ttl         time.Duration
	log         *logger.Logger

	mu        sync.Mutex
	cached    *QuoteSettings
	fetchedAt time.Time

	group singleflight.Group
	now   func() time.Time
}

// NewResolver creates a resolver reading the given config range with the
// given cache TTL.
func NewResolver(store Store, configRange string, ttl time.Duration, log *logger.Logger) *Resolver {
	return &Resolver{
		store:       store,
		configRange: configRange,
		ttl:         ttl,
		log:         log,
		now:         time.Now,
	}
}

// Get returns the current settings, serving from cache within the TTL and
// refreshing through a single flight otherwise. A failed refresh returns the
// compiled-in defaults flagged as fallback; the failure is logged, never
// propagated.
func (r *Resolver) Get(ctx context.Context) Snapshot {
	r.mu.Lock()
	if r.cached != nil && r.now().Sub(r.fetchedAt) < r.ttl {
		snap := Snapshot{Settings: r.cached, CachedAt: r.fetchedAt, FromCache: true}
		r.mu.Unlock()
		return snap
	}
	r.mu.Unlock()

	result, err, _ := r.group.Do("settings", func() (interface{}, error) {
		return r.refresh(ctx)
	})
	if err != nil {
		if r.log != nil {
			r.log.SettingsFallback(err.Error())
		}
		return Snapshot{Settings: Defaults(), CachedAt: r.now(), Fallback: true}
	}

	return result.(Snapshot)
}

// Invalidate clears the cached snapshot so the next Get refetches.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = nil
	r.fetchedAt = time.Time{}
}

// Init idempotently seeds the default configuration into the store's config
// area. Re-running overwrites row values; it never duplicates rows because
// the rows are written as one contiguous range in a fixed order.
func (r *Resolver) Init(ctx context.Context) error {
	rows := ToRaw(Defaults())
	if err := r.store.Update(ctx, r.configRange, rows); err != nil {
		return fmt.Errorf("seed config: %w", err)
	}
	r.Invalidate()
	return nil
}

func (r *Resolver) refresh(ctx context.Context) (Snapshot, error) {
	rows, err := r.store.ReadRange(ctx, r.configRange)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch config: %w", err)
	}

	parsed := FromRaw(RowsToMap(rows))
	fetchedAt := r.now()

	r.mu.Lock()
	r.cached = parsed
	r.fetchedAt = fetchedAt
	r.mu.Unlock()

	return Snapshot{Settings: parsed, CachedAt: fetchedAt}, nil
}
