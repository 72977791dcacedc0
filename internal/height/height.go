// Package height derives a building's vertical extent from its tags.
package height

import (
	"math"
	"strconv"
	"strings"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
)

// assumed meters per building level when only a level count is tagged
const metersPerLevel = 3.0

// default height for a tagged building with no usable height information
const defaultBuildingHeight = 10.0

// Resolve walks the tag fallback chain and always returns a fully
// populated HeightInfo. Malformed numeric values are treated as absent,
// never as errors.
//
// Chain: height -> min_height | building:min_height ->
// building:levels x3 -> building:min_level x3 -> building default 10 -> 0.
func Resolve(tags model.Tags) model.HeightInfo {
	h, okH := parseMeters(tags, "height")

	m, okM := parseMeters(tags, "min_height")
	if !okM {
		m, okM = parseMeters(tags, "building:min_height")
	}

	if lv, ok := parseMeters(tags, "building:levels"); ok && !okH {
		h, okH = lv*metersPerLevel, true
	}
	// the source data tags the base offset as min_level, not min_levels
	if ml, ok := parseMeters(tags, "building:min_level"); ok && !okM {
		m, okM = ml*metersPerLevel, true
	}

	if !okH {
		if tags.Has("building") {
			h = defaultBuildingHeight
		} else {
			h = 0.0
		}
	}
	if !okM {
		m = 0.0
	}

	return model.HeightInfo{
		Height:          h,
		MinHeight:       m,
		EffectiveHeight: math.Max(0.0, h-m),
	}
}

// Zero is the HeightInfo for elements that are not buildings.
func Zero() model.HeightInfo {
	return model.HeightInfo{}
}

// parseMeters reads a tag as a float after stripping surrounding
// whitespace and an optional trailing "m" unit suffix (case-insensitive).
func parseMeters(tags model.Tags, key string) (float64, bool) {
	raw, ok := tags.Get(key)
	if !ok {
		return 0, false
	}
	s := strings.TrimSpace(raw)
	if len(s) > 0 {
		if last := s[len(s)-1]; last == 'm' || last == 'M' {
			s = strings.TrimSpace(s[:len(s)-1])
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
