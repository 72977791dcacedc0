package elevation

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	h3 "github.com/uber/h3-go/v4"

	"github.com/Ruilesser/HackTheChange2025/internal/cache"
	"github.com/Ruilesser/HackTheChange2025/internal/cache/keys"
)

// Terrain barely varies inside an H3 res-12 cell (~300m across), so
// nearby centroids share one upstream lookup.
const DefaultCellRes = 12

// Cached memoizes lookups by the H3 cell of the coordinate: an in-process
// LRU in front of an optional shared store, in front of the upstream
// provider. Cache failures are logged and fall through to the next tier;
// they never fail the lookup themselves.
type Cached struct {
	next   Provider
	logger *slog.Logger
	local  *lru.Cache[string, float64]
	store  cache.Interface // may be nil
	res    int
	ttl    time.Duration
}

var _ Provider = (*Cached)(nil)

func NewCached(next Provider, logger *slog.Logger, store cache.Interface, lruSize, res int, ttl time.Duration) (*Cached, error) {
	if lruSize <= 0 {
		lruSize = 4096
	}
	if res < 0 || res > 15 {
		res = DefaultCellRes
	}
	local, err := lru.New[string, float64](lruSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{
		next:   next,
		logger: logger,
		local:  local,
		store:  store,
		res:    res,
		ttl:    ttl,
	}, nil
}

func (c *Cached) Lookup(ctx context.Context, lat, lon float64) (float64, error) {
	key, ok := c.cellKey(lat, lon)
	if !ok {
		return c.next.Lookup(ctx, lat, lon)
	}

	if v, ok := c.local.Get(key); ok {
		return v, nil
	}

	if c.store != nil {
		if b, ok, err := c.store.Get(key); err != nil {
			c.logger.Debug("elevation cache read failed", "key", key, "err", err)
		} else if ok {
			if v, err := strconv.ParseFloat(string(b), 64); err == nil {
				c.local.Add(key, v)
				return v, nil
			}
		}
	}

	v, err := c.next.Lookup(ctx, lat, lon)
	if err != nil {
		return 0, err
	}

	c.local.Add(key, v)
	if c.store != nil {
		enc := strconv.FormatFloat(v, 'f', -1, 64)
		if err := c.store.Set(key, []byte(enc), c.ttl); err != nil {
			c.logger.Debug("elevation cache write failed", "key", key, "err", err)
		}
	}
	return v, nil
}

func (c *Cached) cellKey(lat, lon float64) (string, bool) {
	cell, err := h3.LatLngToCell(h3.LatLng{Lat: lat, Lng: lon}, c.res)
	if err != nil {
		return "", false
	}
	return keys.Elevation(cell.String()), true
}
