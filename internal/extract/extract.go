// Package extract reconstructs ways from an Overpass-style query result.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
	"github.com/Ruilesser/HackTheChange2025/internal/core/observability"
)

// ErrMalformedPayload marks input that cannot be extracted at all:
// invalid JSON or a document without an elements list. It is the only
// fatal failure; everything element-level degrades silently.
var ErrMalformedPayload = errors.New("malformed query payload")

type rawElement struct {
	Type  string     `json:"type"`
	ID    int64      `json:"id"`
	Lat   float64    `json:"lat"`
	Lon   float64    `json:"lon"`
	Nodes []int64    `json:"nodes"`
	Tags  model.Tags `json:"tags"`
}

type document struct {
	Elements *[]rawElement `json:"elements"`
}

// Elements parses the raw payload and resolves each way's node references
// into an ordered point sequence. References to nodes outside the queried
// window are dropped; a way whose references all fail to resolve is
// dropped entirely. Output order follows the order of way records in the
// input. Record types other than node and way are ignored.
func Elements(raw []byte) ([]model.ExtractedElement, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if doc.Elements == nil {
		return nil, fmt.Errorf("%w: missing elements list", ErrMalformedPayload)
	}

	els := *doc.Elements

	nodes := make(map[int64]model.GeoPoint)
	for _, el := range els {
		if el.Type == "node" {
			nodes[el.ID] = model.GeoPoint{Lat: el.Lat, Lon: el.Lon}
		}
	}

	out := make([]model.ExtractedElement, 0, len(els))
	dropped := 0
	for _, el := range els {
		if el.Type != "way" {
			continue
		}
		points := make([]model.GeoPoint, 0, len(el.Nodes))
		for _, ref := range el.Nodes {
			if p, ok := nodes[ref]; ok {
				points = append(points, p)
			}
		}
		if len(points) == 0 {
			dropped++
			continue
		}
		out = append(out, model.ExtractedElement{
			ID:     el.ID,
			Points: points,
			Tags:   el.Tags,
		})
	}
	observability.AddElementsDropped(dropped)
	return out, nil
}
