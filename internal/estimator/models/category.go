package models

import "strings"

// ============================================================
// Room categories
// ============================================================

type Category uint8

const (
	CategoryBedroom Category = iota
	CategoryLiving
	CategoryDining
	CategoryKitchen
	CategoryBathroom
	CategoryHallway
	CategoryStudy
	CategoryLaundry
	CategoryGarage
	CategoryOther
)

type categoryPolicy struct {
	key        string
	label      string
	carpetable bool
}

var categoryPolicies = [...]categoryPolicy{
	CategoryBedroom:  {key: "bedroom", label: "Bedroom", carpetable: true},
	CategoryLiving:   {key: "living", label: "Living Room", carpetable: true},
	CategoryDining:   {key: "dining", label: "Dining Room", carpetable: true},
	CategoryKitchen:  {key: "kitchen", label: "Kitchen", carpetable: false},
	CategoryBathroom: {key: "bathroom", label: "Bathroom", carpetable: false},
	CategoryHallway:  {key: "hallway", label: "Hallway", carpetable: true},
	CategoryStudy:    {key: "study", label: "Study", carpetable: true},
	CategoryLaundry:  {key: "laundry", label: "Laundry", carpetable: false},
	CategoryGarage:   {key: "garage", label: "Garage", carpetable: false},
	CategoryOther:    {key: "other", label: "Other", carpetable: true},
}

// Categories lists every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryPolicies))
	for i := range categoryPolicies {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory maps a category key to its enum value. Unknown keys fall back
// to CategoryOther and report ok=false.
func ParseCategory(s string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, p := range categoryPolicies {
		if p.key == key {
			return Category(i), true
		}
	}
	return CategoryOther, false
}

func (c Category) policy() categoryPolicy {
	if int(c) >= len(categoryPolicies) {
		return categoryPolicies[CategoryOther]
	}
	return categoryPolicies[c]
}

// Carpetable reports the default carpet policy for the category.
func (c Category) Carpetable() bool {
	return c.policy().carpetable
}

func (c Category) Label() string {
	return c.policy().label
}

func (c Category) String() string {
	return c.policy().key
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	*c, _ = ParseCategory(string(text))
	return nil
}
