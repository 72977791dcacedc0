package icons

import "github.com/Ruilesser/HackTheChange2025/internal/core/model"

// Classify picks one icon for a tag set. Tags are scanned in stored order
// and the first classifiable key wins; a tag set carrying, say, both shop
// and amenity keys therefore classifies by whichever the source document
// listed first. Classify is total: it never returns an empty string, and
// an empty tag set falls straight through to the global fallback.
func (t *Table) Classify(tags model.Tags) string {
	for _, tag := range tags {
		switch tag.Key {
		case "amenity":
			if _, ok := recreationalAmenities[tag.Value]; ok {
				return recreationalIcon
			}
			cat := t.Categories["amenity"]
			if icon, ok := cat.Values[tag.Value]; ok {
				return icon
			}
			return cat.Default
		case "emergency":
			cat := t.Categories["emergency"]
			if icon, ok := cat.Values[tag.Value]; ok {
				return icon
			}
			return cat.Default
		case "natural":
			// value is irrelevant for natural features
			return t.Categories["natural"].Default
		default:
			if cat, ok := t.Categories[tag.Key]; ok {
				return cat.Default
			}
		}
	}
	return t.Fallback
}
