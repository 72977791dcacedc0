package modes

import (
	"encoding/json"
	"fmt"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
	"github.com/Ruilesser/HackTheChange2025/internal/export"
)

// ContentType for a response format.
func ContentType(format string) string {
	if format == "geojson" {
		return "application/geo+json"
	}
	return "application/json"
}

// Encode renders the processed feature list in the requested format and
// returns the body with its content type. The encoded body is also what
// the cached mode stores, so it must be deterministic for a given input.
func Encode(format string, features []model.ProcessedFeature) ([]byte, string, error) {
	switch format {
	case "geojson":
		b, err := export.Marshal(features)
		if err != nil {
			return nil, "", fmt.Errorf("encode geojson: %w", err)
		}
		return b, ContentType(format), nil
	default:
		b, err := json.Marshal(struct {
			Features []model.ProcessedFeature `json:"features"`
		}{Features: features})
		if err != nil {
			return nil, "", fmt.Errorf("encode json: %w", err)
		}
		return b, ContentType(format), nil
	}
}
