// Package icons assigns a render icon to a feature from its tags.
package icons

// Category is one tag key's icon lookup: per-value icons plus the
// category's own default (the "_default" slot of the table schema).
type Category struct {
	Values  map[string]string
	Default string
}

// Table is the static classification table: tag key -> Category, plus the
// single global fallback ("_global_default"). It is built once at startup
// and never mutated; icon paths must stay byte-for-byte stable because
// clients resolve them against bundled SVG assets.
type Table struct {
	Categories map[string]Category
	Fallback   string
}

// amenity values that all share the recreational icon
var recreationalAmenities = map[string]struct{}{
	"restaurant": {},
	"cafe":       {},
	"bar":        {},
	"pub":        {},
	"fast_food":  {},
	"food_court": {},
	"ice_cream":  {},
	"cinema":     {},
	"theatre":    {},
	"nightclub":  {},
	"casino":     {},
}

const recreationalIcon = "icons/amenity_recreational.svg"

var defaultTable = &Table{
	Fallback: "icons/default.svg",
	Categories: map[string]Category{
		"amenity": {
			Values: map[string]string{
				"school":           "icons/amenity_school.svg",
				"university":       "icons/amenity_school.svg",
				"kindergarten":     "icons/amenity_school.svg",
				"hospital":         "icons/amenity_hospital.svg",
				"clinic":           "icons/amenity_hospital.svg",
				"doctors":          "icons/amenity_hospital.svg",
				"pharmacy":         "icons/amenity_pharmacy.svg",
				"bank":             "icons/amenity_bank.svg",
				"atm":              "icons/amenity_bank.svg",
				"fuel":             "icons/amenity_fuel.svg",
				"parking":          "icons/amenity_parking.svg",
				"police":           "icons/amenity_police.svg",
				"fire_station":     "icons/amenity_fire_station.svg",
				"library":          "icons/amenity_library.svg",
				"place_of_worship": "icons/amenity_worship.svg",
				"post_office":      "icons/amenity_post.svg",
				"toilets":          "icons/amenity_toilets.svg",
			},
			Default: "icons/amenity.svg",
		},
		"emergency": {
			Values: map[string]string{
				"fire_hydrant":  "icons/emergency_fire_hydrant.svg",
				"defibrillator": "icons/emergency_defibrillator.svg",
				"phone":         "icons/emergency_phone.svg",
				"ambulance_station": "icons/emergency_ambulance.svg",
			},
			Default: "icons/emergency.svg",
		},
		"natural":          {Default: "icons/natural.svg"},
		"building":         {Default: "icons/building.svg"},
		"highway":          {Default: "icons/highway.svg"},
		"landuse":          {Default: "icons/landuse.svg"},
		"leisure":          {Default: "icons/leisure.svg"},
		"shop":             {Default: "icons/shop.svg"},
		"tourism":          {Default: "icons/tourism.svg"},
		"water":            {Default: "icons/water.svg"},
		"waterway":         {Default: "icons/waterway.svg"},
		"railway":          {Default: "icons/railway.svg"},
		"aeroway":          {Default: "icons/aeroway.svg"},
		"barrier":          {Default: "icons/barrier.svg"},
		"boundary":         {Default: "icons/boundary.svg"},
		"craft":            {Default: "icons/craft.svg"},
		"historic":         {Default: "icons/historic.svg"},
		"man_made":         {Default: "icons/man_made.svg"},
		"military":         {Default: "icons/military.svg"},
		"office":           {Default: "icons/office.svg"},
		"place":            {Default: "icons/place.svg"},
		"power":            {Default: "icons/power.svg"},
		"public_transport": {Default: "icons/public_transport.svg"},
		"route":            {Default: "icons/route.svg"},
		"sport":            {Default: "icons/sport.svg"},
		"healthcare":       {Default: "icons/healthcare.svg"},
		"bridge":           {Default: "icons/bridge.svg"},
		"tunnel":           {Default: "icons/tunnel.svg"},
	},
}

// Default returns the process-wide classification table.
func Default() *Table {
	return defaultTable
}
