package svgplan

import (
	"strings"

	"carpet-estimator/internal/estimator/models"
)

type roomKind struct {
	category   models.Category
	carpetable bool
}

// keywords are checked in order; "ensuite" must win over "bed" for
// "Bedroom_Ensuite" style ids, so bathroom words come first.
var keywords = []struct {
	words    []string
	category models.Category
}{
	{[]string{"bath", "toilet", "wc", "ensuite", "shower", "powder"}, models.CategoryBathroom},
	{[]string{"laundry"}, models.CategoryLaundry},
	{[]string{"garage"}, models.CategoryGarage},
	{[]string{"kitchen", "pantry"}, models.CategoryKitchen},
	{[]string{"bed", "master", "nursery"}, models.CategoryBedroom},
	{[]string{"living", "lounge", "family", "rumpus"}, models.CategoryLiving},
	{[]string{"dining", "meals"}, models.CategoryDining},
	{[]string{"hall", "corridor", "entry", "foyer"}, models.CategoryHallway},
	{[]string{"study", "office"}, models.CategoryStudy},
}

// classify decides whether an element id names a room and, if so, which
// category it gets. Generic "Room_N" ids fall back to Other.
func classify(id string) (roomKind, bool) {
	lower := strings.ToLower(strings.TrimSpace(id))
	if lower == "" {
		return roomKind{}, false
	}

	if strings.HasPrefix(lower, "balcony") {
		return roomKind{category: models.CategoryOther, carpetable: false}, true
	}

	for _, k := range keywords {
		for _, w := range k.words {
			if strings.Contains(lower, w) {
				return roomKind{category: k.category, carpetable: k.category.Carpetable()}, true
			}
		}
	}

	if strings.HasPrefix(lower, "room_") || strings.HasSuffix(lower, "_room") {
		return roomKind{category: models.CategoryOther, carpetable: true}, true
	}
	return roomKind{}, false
}

// displayName turns "Master_Bedroom_room" into "Master Bedroom".
func displayName(id string) string {
	name := strings.TrimSpace(id)
	if lower := strings.ToLower(name); strings.HasSuffix(lower, "_room") && len(name) > len("_room") {
		name = name[:len(name)-len("_room")]
	}
	name = strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	}), " ")
	return name
}
