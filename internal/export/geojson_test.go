package export

import (
	"encoding/json"
	"testing"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
)

func squareFeature() model.ProcessedFeature {
	return model.ProcessedFeature{
		ID: 42,
		Points: []model.GeoPoint{
			{Lat: 51.0, Lon: 10.0},
			{Lat: 51.0, Lon: 10.1},
			{Lat: 51.1, Lon: 10.1},
			{Lat: 51.0, Lon: 10.0},
		},
		Centroid: model.GeoPoint{Lat: 51.03, Lon: 10.07},
		BaseElev: 310,
		HeightInfo: model.HeightInfo{
			Height:          12,
			MinHeight:       3,
			EffectiveHeight: 9,
		},
		Tags: model.Tags{{Key: "building", Value: "yes"}},
		Icon: "icons/default.svg",
	}
}

func TestFeatureCollection_ClosedRingBecomesPolygon(t *testing.T) {
	fc := FeatureCollection([]model.ProcessedFeature{squareFeature()})
	if len(fc.Features) != 1 {
		t.Fatalf("features=%d", len(fc.Features))
	}
	f := fc.Features[0]
	if f.Geometry == nil || !f.Geometry.IsPolygon() {
		t.Fatalf("geometry=%+v want polygon", f.Geometry)
	}
	ring := f.Geometry.Polygon[0]
	if len(ring) != 4 {
		t.Fatalf("ring len=%d", len(ring))
	}
	if ring[0][0] != 10.0 || ring[0][1] != 51.0 {
		t.Fatalf("first coord=%v want [lon lat]", ring[0])
	}
}

func TestFeatureCollection_OpenPathBecomesLineString(t *testing.T) {
	pf := squareFeature()
	pf.Points = pf.Points[:3]

	fc := FeatureCollection([]model.ProcessedFeature{pf})
	if g := fc.Features[0].Geometry; g == nil || !g.IsLineString() {
		t.Fatalf("geometry=%+v want linestring", fc.Features[0].Geometry)
	}
}

func TestFeatureCollection_Properties(t *testing.T) {
	f := FeatureCollection([]model.ProcessedFeature{squareFeature()}).Features[0]

	if got, _ := f.PropertyString("icon"); got != "icons/default.svg" {
		t.Fatalf("icon=%q", got)
	}
	if got, _ := f.PropertyFloat64("base_elev"); got != 310 {
		t.Fatalf("base_elev=%v", got)
	}
	if got, _ := f.PropertyFloat64("effective_height"); got != 9 {
		t.Fatalf("effective_height=%v", got)
	}
	tags, ok := f.Properties["tags"].(map[string]string)
	if !ok || tags["building"] != "yes" {
		t.Fatalf("tags=%v", f.Properties["tags"])
	}
}

func TestMarshal_ProducesFeatureCollection(t *testing.T) {
	b, err := Marshal([]model.ProcessedFeature{squareFeature()})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			ID       float64 `json:"id"`
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Type != "FeatureCollection" {
		t.Fatalf("type=%q", doc.Type)
	}
	if len(doc.Features) != 1 || doc.Features[0].ID != 42 {
		t.Fatalf("doc=%+v", doc)
	}
	if doc.Features[0].Geometry.Type != "Polygon" {
		t.Fatalf("geometry type=%q", doc.Features[0].Geometry.Type)
	}
}

func TestMarshal_EmptyList(t *testing.T) {
	b, err := Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc struct {
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Features) != 0 {
		t.Fatalf("features=%d", len(doc.Features))
	}
}
