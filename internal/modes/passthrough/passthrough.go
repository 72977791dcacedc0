// Package passthrough serves each request by fetching and processing
// fresh upstream data, with no response caching.
package passthrough

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ruilesser/HackTheChange2025/internal/core/config"
	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
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
}

func init() {
	modes.Register("passthrough", newPassthrough)
}

func newPassthrough(_ config.Config, logger *slog.Logger, deps modes.Deps) (router.FeatureHandler, error) {
	return &Engine{logger: logger, up: deps.Upstream, pipe: deps.Pipeline}, nil
}

func (e *Engine) HandleFeatures(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.FeatureRequest) {
	body, status, err := e.serve(ctx, q)
	if err != nil {
		e.logger.Error("feature request failed", "bbox", q.BBox.String(), "err", err)
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", modes.ContentType(q.Format))
	_, _ = w.Write(body)
}

func (e *Engine) serve(ctx context.Context, q model.FeatureRequest) ([]byte, int, error) {
	raw, err := e.up.QueryBBox(ctx, q.BBox)
	if err != nil {
		return nil, http.StatusBadGateway, err
	}

	features, err := e.pipe.Process(ctx, raw)
	if err != nil {
		// the upstream answered with something that is not a query result
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
