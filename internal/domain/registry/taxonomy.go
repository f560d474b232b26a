package registry

import "strings"

// Category is the fixed taxonomy every registry item resolves into.
// An item's category is never null and never an arbitrary string; anything
// a feed sends that cannot be matched falls back to CategoryUncategorized.
type Category string

const (
	CategoryNursery       Category = "Nursery"
	CategoryGear          Category = "Gear"
	CategoryFeeding       Category = "Feeding"
	CategoryClothing      Category = "Clothing"
	CategoryBath          Category = "Bath"
	CategoryHealth        Category = "Health"
	CategoryToys          Category = "Toys"
	CategoryBooks         Category = "Books"
	CategoryPostpartum    Category = "Postpartum"
	CategoryUncategorized Category = "Uncategorized"
)

// AllCategories returns every taxonomy value in display order
func AllCategories() []Category {
	return []Category{
		CategoryNursery,
		CategoryGear,
		CategoryFeeding,
		CategoryClothing,
		CategoryBath,
		CategoryHealth,
		CategoryToys,
		CategoryBooks,
		CategoryPostpartum,
		CategoryUncategorized,
	}
}

// IsValid returns true if the category is a taxonomy value
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// categoryAliases maps normalized free-text labels observed across feeds to
// taxonomy values. Adding a retailer's label vocabulary is a table change.
var categoryAliases = map[string]Category{
	"nursery":           CategoryNursery,
	"nursery decor":     CategoryNursery,
	"nursery furniture": CategoryNursery,
	"cribs":             CategoryNursery,
	"crib":              CategoryNursery,
	"bedding":           CategoryNursery,
	"bassinets":         CategoryNursery,

	"gear":          CategoryGear,
	"baby gear":     CategoryGear,
	"strollers":     CategoryGear,
	"stroller":      CategoryGear,
	"car seats":     CategoryGear,
	"car seat":      CategoryGear,
	"carriers":      CategoryGear,
	"travel":        CategoryGear,
	"travel gear":   CategoryGear,
	"monitors":      CategoryGear,
	"baby monitors": CategoryGear,

	"feeding":        CategoryFeeding,
	"nursing":        CategoryFeeding,
	"bottles":        CategoryFeeding,
	"bottle feeding": CategoryFeeding,
	"breastfeeding":  CategoryFeeding,
	"high chairs":    CategoryFeeding,
	"solid feeding":  CategoryFeeding,

	"clothing":     CategoryClothing,
	"clothes":      CategoryClothing,
	"apparel":      CategoryClothing,
	"baby clothes": CategoryClothing,
	"layette":      CategoryClothing,
	"sleepwear":    CategoryClothing,

	"bath":      CategoryBath,
	"bathing":   CategoryBath,
	"bath time": CategoryBath,
	"bath tubs": CategoryBath,
	"grooming":  CategoryBath,

	"health":            CategoryHealth,
	"health care":       CategoryHealth,
	"health & safety":   CategoryHealth,
	"health and safety": CategoryHealth,
	"safety":            CategoryHealth,
	"babyproofing":      CategoryHealth,
	"diapering":         CategoryHealth,
	"diapers":           CategoryHealth,

	"toys":          CategoryToys,
	"toy":           CategoryToys,
	"wooden toys":   CategoryToys,
	"play":          CategoryToys,
	"playtime":      CategoryToys,
	"activity":      CategoryToys,
	"entertainment": CategoryToys,

	"books":       CategoryBooks,
	"book":        CategoryBooks,
	"board books": CategoryBooks,
	"reading":     CategoryBooks,

	"postpartum":      CategoryPostpartum,
	"recovery":        CategoryPostpartum,
	"postpartum care": CategoryPostpartum,
	"mom":             CategoryPostpartum,
	"maternity":       CategoryPostpartum,
	"for mom":         CategoryPostpartum,
}

// ResolveCategory maps an arbitrary free-text category label to a taxonomy
// value. Matching is case-insensitive and whitespace-tolerant; unmatched or
// empty input resolves to CategoryUncategorized. The function is total: it
// never fails and never returns an out-of-taxonomy value.
func ResolveCategory(rawLabel string) Category {
	normalized := strings.ToLower(strings.TrimSpace(rawLabel))
	normalized = strings.Join(strings.Fields(normalized), " ")
	if normalized == "" {
		return CategoryUncategorized
	}

	// Canonical names match directly, whatever the casing.
	for _, known := range AllCategories() {
		if normalized == strings.ToLower(string(known)) {
			return known
		}
	}

	if category, ok := categoryAliases[normalized]; ok {
		return category
	}
	return CategoryUncategorized
}
