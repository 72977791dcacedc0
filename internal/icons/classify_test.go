package icons

import (
	"strings"
	"testing"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
)

func tags(kv ...string) model.Tags {
	var t model.Tags
	for i := 0; i+1 < len(kv); i += 2 {
		t = append(t, model.Tag{Key: kv[i], Value: kv[i+1]})
	}
	return t
}

func TestClassify_RecreationalAmenity(t *testing.T) {
	got := Default().Classify(tags("amenity", "restaurant"))
	if got != "icons/amenity_recreational.svg" {
		t.Fatalf("got %q", got)
	}
}

func TestClassify_AmenitySubTable(t *testing.T) {
	tbl := Default()
	if got := tbl.Classify(tags("amenity", "hospital")); got != "icons/amenity_hospital.svg" {
		t.Fatalf("hospital: got %q", got)
	}
	// unmatched amenity value falls to the amenity default
	if got := tbl.Classify(tags("amenity", "car_sharing")); got != "icons/amenity.svg" {
		t.Fatalf("unmatched amenity: got %q", got)
	}
}

func TestClassify_EmergencySubTable(t *testing.T) {
	tbl := Default()
	if got := tbl.Classify(tags("emergency", "fire_hydrant")); got != "icons/emergency_fire_hydrant.svg" {
		t.Fatalf("fire_hydrant: got %q", got)
	}
	if got := tbl.Classify(tags("emergency", "siren")); got != "icons/emergency.svg" {
		t.Fatalf("unmatched emergency: got %q", got)
	}
}

func TestClassify_NaturalIgnoresValue(t *testing.T) {
	tbl := Default()
	a := tbl.Classify(tags("natural", "water"))
	b := tbl.Classify(tags("natural", "tree_row"))
	if a != b || a != "icons/natural.svg" {
		t.Fatalf("natural: got %q and %q", a, b)
	}
}

func TestClassify_CategoryPresenceOnly(t *testing.T) {
	tbl := Default()
	// value must not matter for plain categories
	if got := tbl.Classify(tags("shop", "bakery")); got != "icons/shop.svg" {
		t.Fatalf("shop: got %q", got)
	}
	if got := tbl.Classify(tags("building", "cathedral")); got != "icons/building.svg" {
		t.Fatalf("building: got %q", got)
	}
}

func TestClassify_GlobalFallback(t *testing.T) {
	tbl := Default()
	if got := tbl.Classify(tags("unknown_key", "x")); got != "icons/default.svg" {
		t.Fatalf("unknown key: got %q", got)
	}
	if got := tbl.Classify(nil); got != "icons/default.svg" {
		t.Fatalf("empty tags: got %q", got)
	}
}

func TestClassify_FirstKeyWins(t *testing.T) {
	tbl := Default()
	// same keys, different stored order, different outcome
	shopFirst := tbl.Classify(tags("shop", "bakery", "amenity", "cafe"))
	amenityFirst := tbl.Classify(tags("amenity", "cafe", "shop", "bakery"))
	if shopFirst != "icons/shop.svg" {
		t.Fatalf("shop first: got %q", shopFirst)
	}
	if amenityFirst != "icons/amenity_recreational.svg" {
		t.Fatalf("amenity first: got %q", amenityFirst)
	}
}

func TestClassify_UnclassifiableKeysAreSkipped(t *testing.T) {
	// an unknown key ahead of a known one must not short-circuit
	got := Default().Classify(tags("name", "Town Hall", "building", "civic"))
	if got != "icons/building.svg" {
		t.Fatalf("got %q", got)
	}
}

func TestClassify_TotalOverAllCategories(t *testing.T) {
	tbl := Default()
	for key := range tbl.Categories {
		got := tbl.Classify(tags(key, "anything"))
		if got == "" {
			t.Fatalf("key %q: empty icon", key)
		}
		if !strings.HasPrefix(got, "icons/") || !strings.HasSuffix(got, ".svg") {
			t.Fatalf("key %q: unexpected icon path %q", key, got)
		}
	}
}
