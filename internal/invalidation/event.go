// Package invalidation defines map-data refresh events that drop stale
// cache entries.
package invalidation

import (
	"fmt"
	"time"

	"github.com/Ruilesser/HackTheChange2025/internal/cache/keys"
)

// Event announces that upstream map data changed. A terrain event names
// the H3 cells whose elevation samples went stale; a basemap event means
// the source map data itself changed. Either way every cached feature
// tile is stale, since tiles bake elevation and tags into the response.
type Event struct {
	Version int       `json:"version"`
	Kind    string    `json:"kind"` // "terrain" or "basemap"
	TS      time.Time `json:"ts"`
	Cells   []string  `json:"cells,omitempty"`
	Source  string    `json:"source,omitempty"`
}

func (e Event) Validate() error {
	if e.Version != 1 {
		return fmt.Errorf("version must be 1")
	}
	switch e.Kind {
	case "terrain":
		if len(e.Cells) == 0 {
			return fmt.Errorf("terrain event requires cells")
		}
	case "basemap":
		if len(e.Cells) != 0 {
			return fmt.Errorf("basemap event must not carry cells")
		}
	default:
		return fmt.Errorf("kind must be terrain|basemap")
	}
	if e.TS.IsZero() {
		return fmt.Errorf("ts is required")
	}
	return nil
}

// Keys returns the exact cache keys to delete for the event.
func (e Event) Keys() []string {
	out := make([]string, 0, len(e.Cells))
	for _, c := range e.Cells {
		out = append(out, keys.Elevation(c))
	}
	return out
}

// Prefixes returns the key prefixes to sweep for the event.
func (e Event) Prefixes() []string {
	return []string{keys.FeaturePrefix}
}
