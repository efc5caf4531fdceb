package refdata

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"cargo-platform-go/internal/logx"
)

// sharedLookupTimeout bounds a lookup that outlives the caller which started it.
const sharedLookupTimeout = 5 * time.Second

// Resolver maps an administrative unit to its region.
type Resolver interface {
	RegionOf(ctx context.Context, unitID int64) (int64, error)
}

// Cache is a best-effort lookaside store for resolved units.
type Cache interface {
	Get(ctx context.Context, unitID int64) (int64, bool, error)
	Set(ctx context.Context, unitID, regionID int64) error
}

// CachedResolver serves lookups from a cache and collapses concurrent misses
// for the same unit into one call to next. Cache failures only degrade to next.
type CachedResolver struct {
	next   Resolver
	cache  Cache
	group  singleflight.Group
	logger logx.Logger
}

// NewCachedResolver wraps next. Without a cache it still deduplicates concurrent lookups.
func NewCachedResolver(next Resolver, cache Cache, logger logx.Logger) *CachedResolver {
	logger = logx.OrNop(logger)
	return &CachedResolver{next: next, cache: cache, logger: logger}
}

// RegionOf implements Resolver.
func (r *CachedResolver) RegionOf(ctx context.Context, unitID int64) (int64, error) {
	if r.cache != nil {
		region, ok, err := r.cache.Get(ctx, unitID)
		if err != nil {
			r.logger.Warn("refdata cache get failed", logx.Int64("unit_id", unitID), logx.Err(err))
		} else if ok {
			return region, nil
		}
	}

	// The shared lookup runs detached from the caller that started it; each caller waits on its own ctx.
	ch := r.group.DoChan(strconv.FormatInt(unitID, 10), func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()

		region, err := r.next.RegionOf(lctx, unitID)
		if err != nil {
			return int64(0), err
		}
		if r.cache != nil {
			if err := r.cache.Set(lctx, unitID, region); err != nil {
				r.logger.Warn("refdata cache set failed", logx.Int64("unit_id", unitID), logx.Err(err))
			}
		}
		return region, nil
	})

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int64), nil
	}
}
