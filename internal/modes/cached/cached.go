// Package cached serves /features from a Redis-backed response cache,
// filling misses through the passthrough path.
package cached

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ruilesser/HackTheChange2025/internal/cache"
	"github.com/Ruilesser/HackTheChange2025/internal/cache/keys"
	"github.com/Ruilesser/HackTheChange2025/internal/core/config"
	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
	"github.com/Ruilesser/HackTheChange2025/internal/core/observability"
	"github.com/Ruilesser/HackTheChange2025/internal/core/router"
	"github.com/Ruilesser/HackTheChange2025/internal/extract"
	"github.com/Ruilesser/HackTheChange2025/internal/modes"
	"github.com/Ruilesser/HackTheChange2025/internal/pipeline"
	"github.com/Ruilesser/HackTheChange2025/internal/upstream"
)

type Engine struct {
	logger *slog.Logger
	up     upstream.Interface
	pipe   *pipeline.Pipeline
	store  cache.Interface
	ttl    time.Duration
}

func init() {
	modes.Register("cached", newCached)
}

func newCached(cfg config.Config, logger *slog.Logger, deps modes.Deps) (router.FeatureHandler, error) {
	if deps.Store == nil {
		return nil, errors.New("cached mode requires a redis store (set REDIS_ADDR)")
	}
	return &Engine{
		logger: logger,
		up:     deps.Upstream,
		pipe:   deps.Pipeline,
		store:  deps.Store,
		ttl:    cfg.CacheTTL,
	}, nil
}

func (e *Engine) HandleFeatures(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.FeatureRequest) {
	key := keys.FeatureTile(q.BBox, q.Format)

	if body, ok, err := e.store.Get(key); err != nil {
		e.logger.Warn("response cache read failed", "key", key, "err", err)
	} else if ok {
		observability.IncCacheHit("features")
		w.Header().Set("Content-Type", modes.ContentType(q.Format))
		w.Header().Set("X-Cache", "HIT")
		_, _ = w.Write(body)
		return
	}
	observability.IncCacheMiss("features")

	body, status, err := e.fill(ctx, q)
	if err != nil {
		e.logger.Error("feature request failed", "bbox", q.BBox.String(), "err", err)
		http.Error(w, err.Error(), status)
		return
	}

	if err := e.store.Set(key, body, e.ttl); err != nil {
		e.logger.Warn("response cache write failed", "key", key, "err", err)
	}

	w.Header().Set("Content-Type", modes.ContentType(q.Format))
	w.Header().Set("X-Cache", "MISS")
	_, _ = w.Write(body)
}

func (e *Engine) fill(ctx context.Context, q model.FeatureRequest) ([]byte, int, error) {
	raw, err := e.up.QueryBBox(ctx, q.BBox)
	if err != nil {
		return nil, http.StatusBadGateway, err
	}

	features, err := e.pipe.Process(ctx, raw)
	if err != nil {
		if errors.Is(err, extract.ErrMalformedPayload) {
			return nil, http.StatusBadGateway, err
		}
		return nil, http.StatusInternalServerError, err
	}

	body, _, err := modes.Encode(q.Format, features)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return body, http.StatusOK, nil
}
