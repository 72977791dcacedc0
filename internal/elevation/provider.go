// Package elevation looks up ground elevation for a coordinate against a
// remote terrain-data service.
package elevation

import "context"

// Provider returns a best-effort ground elevation in meters. The pipeline
// treats any error as "unknown" and degrades to zero elevation, so
// implementations should not retry aggressively.
type Provider interface {
	Lookup(ctx context.Context, lat, lon float64) (float64, error)
}

// Func adapts a plain function to the Provider interface.
type Func func(ctx context.Context, lat, lon float64) (float64, error)

func (f Func) Lookup(ctx context.Context, lat, lon float64) (float64, error) {
	return f(ctx, lat, lon)
}
