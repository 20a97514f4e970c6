package enums

import "fmt"

// ItemCategory groups packable items for filtering.
type ItemCategory string

const (
	ItemCategoryClothing    ItemCategory = "clothing"
	ItemCategoryElectronics ItemCategory = "electronics"
	ItemCategoryToiletries  ItemCategory = "toiletries"
	ItemCategoryDocuments   ItemCategory = "documents"
	ItemCategoryAccessories ItemCategory = "accessories"
	ItemCategoryFootwear    ItemCategory = "footwear"
	ItemCategoryOther       ItemCategory = "other"
)

var validItemCategories = []ItemCategory{
	ItemCategoryClothing,
	ItemCategoryElectronics,
	ItemCategoryToiletries,
	ItemCategoryDocuments,
	ItemCategoryAccessories,
	ItemCategoryFootwear,
	ItemCategoryOther,
}

// String implements fmt.Stringer.
func (c ItemCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ItemCategory.
func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCategory converts raw input into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}
