// Package export renders processed features as GeoJSON.
package export

import (
	"encoding/json"

	geojson "github.com/paulmach/go.geojson"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
)

// FeatureCollection converts the feature list to GeoJSON. A closed point
// ring becomes a Polygon, anything else a LineString. Derived pipeline
// values ride along as properties.
func FeatureCollection(features []model.ProcessedFeature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, pf := range features {
		coords := make([][]float64, len(pf.Points))
		for i, p := range pf.Points {
			coords[i] = []float64{p.Lon, p.Lat}
		}

		var f *geojson.Feature
		if isClosedRing(coords) {
			f = geojson.NewPolygonFeature([][][]float64{coords})
		} else {
			f = geojson.NewLineStringFeature(coords)
		}

		f.ID = pf.ID
		f.SetProperty("icon", pf.Icon)
		f.SetProperty("base_elev", pf.BaseElev)
		f.SetProperty("height", pf.Height)
		f.SetProperty("min_height", pf.MinHeight)
		f.SetProperty("effective_height", pf.EffectiveHeight)
		f.SetProperty("centroid", []float64{pf.Centroid.Lon, pf.Centroid.Lat})
		f.SetProperty("tags", pf.Tags.Map())

		fc.AddFeature(f)
	}
	return fc
}

// Marshal renders the feature list as a GeoJSON document.
func Marshal(features []model.ProcessedFeature) ([]byte, error) {
	return json.Marshal(FeatureCollection(features))
}

func isClosedRing(coords [][]float64) bool {
	if len(coords) < 4 {
		return false
	}
	first, last := coords[0], coords[len(coords)-1]
	return first[0] == last[0] && first[1] == last[1]
}
