// Package pipeline enriches extracted map elements into render-ready
// features: centroid, elevation, height, icon and projected coordinate.
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
	"github.com/Ruilesser/HackTheChange2025/internal/core/observability"
	"github.com/Ruilesser/HackTheChange2025/internal/elevation"
	"github.com/Ruilesser/HackTheChange2025/internal/extract"
	"github.com/Ruilesser/HackTheChange2025/internal/height"
	"github.com/Ruilesser/HackTheChange2025/internal/icons"
	"github.com/Ruilesser/HackTheChange2025/internal/proj"
)

type Pipeline struct {
	logger  *slog.Logger
	elev    elevation.Provider
	table   *icons.Table
	workers int
}

type Option func(*Pipeline)

// WithWorkers sets the number of concurrent element workers. Element
// processing is independent per element, so the loop parallelizes
// freely; output order always matches input order.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithTable overrides the default classification table.
func WithTable(t *icons.Table) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.table = t
		}
	}
}

func New(logger *slog.Logger, elev elevation.Provider, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		logger:  logger,
		elev:    elev,
		table:   icons.Default(),
		workers: 1,
	}
	for _, f := range opts {
		f(p)
	}
	return p
}

// Process converts a raw query payload into the enriched feature list.
// Only a structurally malformed payload is an error; everything
// element-level degrades per feature and never aborts the batch.
func (p *Pipeline) Process(ctx context.Context, raw []byte) ([]model.ProcessedFeature, error) {
	elems, err := extract.Elements(raw)
	if err != nil {
		return nil, err
	}

	out := make([]model.ProcessedFeature, len(elems))
	if p.workers <= 1 || len(elems) <= 1 {
		for i, el := range elems {
			out[i] = p.processOne(ctx, el)
		}
	} else {
		// results are indexed by input position, so worker completion
		// order cannot reorder the output
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < p.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					out[i] = p.processOne(ctx, elems[i])
				}
			}()
		}
		for i := range elems {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	observability.AddFeaturesProcessed(len(out))
	return out, nil
}

func (p *Pipeline) processOne(ctx context.Context, el model.ExtractedElement) model.ProcessedFeature {
	c := centroid(el.Points)

	baseElev, err := p.elev.Lookup(ctx, c.Lat, c.Lon)
	if err != nil {
		observability.IncElevationFailure()
		p.logger.Debug("elevation lookup failed, using 0",
			"id", el.ID, "lat", c.Lat, "lon", c.Lon, "err", err)
		baseElev = 0.0
	}

	hi := height.Zero()
	if el.Tags.Has("building") {
		hi = height.Resolve(el.Tags)
	}

	x, y := proj.Project(c.Lon, c.Lat)

	return model.ProcessedFeature{
		ID:         el.ID,
		Points:     el.Points,
		Centroid:   c,
		XY:         model.XY{X: x, Y: y},
		BaseElev:   baseElev,
		HeightInfo: hi,
		Tags:       el.Tags,
		Icon:       p.table.Classify(el.Tags),
	}
}

// centroid is the arithmetic mean of the boundary points' latitudes and
// longitudes, not a geodesic or area-weighted center.
func centroid(pts []model.GeoPoint) model.GeoPoint {
	var lat, lon float64
	for _, p := range pts {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(pts))
	return model.GeoPoint{Lat: lat / n, Lon: lon / n}
}
