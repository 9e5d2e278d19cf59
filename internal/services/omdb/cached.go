package omdb

import (
	"context"
	"fmt"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"popcorn/internal/domain"
	"popcorn/internal/logger"
	"popcorn/internal/metrics"
	"popcorn/internal/ports"
)

// CachedClient keeps recent lookups in memory and merges identical
// lookups that are in flight at the same time.
type CachedClient struct {
	next     ports.MovieService
	searches *lru.Cache[string, []domain.SearchResult]
	details  *lru.Cache[string, domain.MovieDetail]
	group    singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is one lookup shared by its waiting callers. It is cancelled
// when the last of them gives up.
type flight struct {
	waiters int
	cancel  context.CancelFunc
	run     func() (any, error)
}

func NewCachedClient(next ports.MovieService, size int) (*CachedClient, error) {
	if size < 1 {
		size = 1
	}
	searches, err := lru.New[string, []domain.SearchResult](size)
	if err != nil {
		return nil, fmt.Errorf("omdb.NewCachedClient: %w", err)
	}
	details, err := lru.New[string, domain.MovieDetail](size)
	if err != nil {
		return nil, fmt.Errorf("omdb.NewCachedClient: %w", err)
	}
	return &CachedClient{
		next:     next,
		searches: searches,
		details:  details,
		flights:  make(map[string]*flight),
	}, nil
}

func (c *CachedClient) SearchByTitle(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if results, ok := c.searches.Get(query); ok {
		metrics.CacheOperations.WithLabelValues(opSearch, "hit").Inc()
		return slices.Clone(results), nil
	}
	metrics.CacheOperations.WithLabelValues(opSearch, "miss").Inc()

	v, err := c.shared(ctx, "s:"+query, func(ctx context.Context) (any, error) {
		results, err := c.next.SearchByTitle(ctx, query)
		if err != nil {
			return nil, err
		}
		c.searches.Add(query, results)
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]domain.SearchResult)), nil
}

func (c *CachedClient) GetByID(ctx context.Context, id string) (domain.MovieDetail, error) {
	if movie, ok := c.details.Get(id); ok {
		metrics.CacheOperations.WithLabelValues(opDetail, "hit").Inc()
		return movie, nil
	}
	metrics.CacheOperations.WithLabelValues(opDetail, "miss").Inc()

	v, err := c.shared(ctx, "i:"+id, func(ctx context.Context) (any, error) {
		movie, err := c.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		c.details.Add(id, movie)
		return movie, nil
	})
	if err != nil {
		return domain.MovieDetail{}, err
	}
	return v.(domain.MovieDetail), nil
}

// shared runs fn once per key for all concurrent callers. A caller whose
// context ends gets ErrAborted right away; the lookup itself is cancelled
// only once no caller is waiting for it.
func (c *CachedClient) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	f, ok := c.flights[key]
	if !ok {
		flightCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{cancel: cancel}
		f.run = func() (any, error) {
			defer c.release(key, f)
			return fn(flightCtx)
		}
		c.flights[key] = f
	}
	f.waiters++
	ch := c.group.DoChan(key, f.run)
	c.mu.Unlock()

	select {
	case res := <-ch:
		c.mu.Lock()
		f.waiters--
		c.mu.Unlock()
		if res.Shared {
			logger.FromContext(ctx).Debug().Str("key", key).Msg("Lookup shared with another caller")
		}
		return res.Val, res.Err
	case <-ctx.Done():
		c.mu.Lock()
		f.waiters--
		if f.waiters == 0 {
			logger.FromContext(ctx).Debug().Str("key", key).Msg("Last caller left, cancelling lookup")
			c.forget(key, f)
		}
		c.mu.Unlock()
		return nil, fmt.Errorf("omdb.CachedClient: %w: %w", domain.ErrAborted, ctx.Err())
	}
}

func (c *CachedClient) release(key string, f *flight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forget(key, f)
}

// forget cancels f and detaches it from key so the next caller starts a
// fresh lookup. The caller holds c.mu.
func (c *CachedClient) forget(key string, f *flight) {
	f.cancel()
	if c.flights[key] == f {
		delete(c.flights, key)
		c.group.Forget(key)
	}
}
