// Package proj converts geographic coordinates to planar web-mercator meters.
package proj

import "math"

// WGS84 equatorial radius in meters.
const earthRadius = 6378137.0

// Project maps lon/lat degrees onto the spherical web-mercator plane.
// Latitudes at or beyond ±90 hit the tangent/log singularity and yield a
// non-finite y; callers keep latitudes strictly inside (-90, 90).
func Project(lon, lat float64) (x, y float64) {
	x = lon * earthRadius * math.Pi / 180.0
	y = math.Log(math.Tan((90.0+lat)*math.Pi/360.0)) * earthRadius
	return x, y
}
