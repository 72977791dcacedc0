// Package modes selects the request engine serving /features.
package modes

import (
	"fmt"
	"log/slog"

	"github.com/Ruilesser/HackTheChange2025/internal/cache"
	"github.com/Ruilesser/HackTheChange2025/internal/core/config"
	"github.com/Ruilesser/HackTheChange2025/internal/core/router"
	"github.com/Ruilesser/HackTheChange2025/internal/pipeline"
	"github.com/Ruilesser/HackTheChange2025/internal/upstream"
)

// Deps are the shared collaborators every engine builds on. Store may be
// nil when no Redis is configured.
type Deps struct {
	Upstream upstream.Interface
	Pipeline *pipeline.Pipeline
	Store    cache.Interface
}

type Factory func(cfg config.Config, logger *slog.Logger, deps Deps) (router.FeatureHandler, error)

var reg = map[string]Factory{}

func Register(name string, f Factory) {
	reg[name] = f
}

func New(name string, cfg config.Config, logger *slog.Logger, deps Deps) (router.FeatureHandler, error) {
	if f, ok := reg[name]; ok {
		return f(cfg, logger, deps)
	}
	if f, ok := reg["passthrough"]; ok {
		logger.Warn("unknown mode; falling back to passthrough", "mode", name)
		return f(cfg, logger, deps)
	}
	return nil, fmt.Errorf("no factory for mode %q and no passthrough registered", name)
}
