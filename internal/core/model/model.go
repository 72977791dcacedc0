// Package model defines core domain types shared across the service.
package model

import "fmt"

// GeoPoint is a WGS84 latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type BBox struct {
	X1, Y1 float64
	X2, Y2 float64
	SRID   string
}

// String representation matching the bbox query-parameter format
func (b BBox) String() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f,%s", b.X1, b.Y1, b.X2, b.Y2, b.SRID)
}

// FeatureRequest is a validated /features query.
type FeatureRequest struct {
	BBox   BBox
	Format string // "json" or "geojson"
}

// XY is a planar web-mercator coordinate in meters.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HeightInfo carries the derived vertical extent of a structure.
// EffectiveHeight is always max(0, Height-MinHeight).
type HeightInfo struct {
	Height          float64 `json:"height"`
	MinHeight       float64 `json:"min_height"`
	EffectiveHeight float64 `json:"effective_height"`
}

// ExtractedElement is a way with its node references resolved to points.
// Never constructed with zero points.
type ExtractedElement struct {
	ID     int64
	Points []GeoPoint
	Tags   Tags
}

// ProcessedFeature is the terminal output record of the pipeline.
type ProcessedFeature struct {
	ID       int64      `json:"id"`
	Points   []GeoPoint `json:"points"`
	Centroid GeoPoint   `json:"centroid"`
	XY       XY         `json:"xy"`
	BaseElev float64    `json:"base_elev"`
	HeightInfo
	Tags Tags   `json:"tags"`
	Icon string `json:"icon"`
}
