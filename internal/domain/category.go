// Package domain holds the core types of the papertrail classifier.
package domain

// Category is one of the six fixed document classes. The set is closed at
// model-build time; vectors and rule libraries are always keyed by exactly
// this set.
type Category string

// The fixed category set.
const (
	CategoryInvoice  Category = "invoice"
	CategoryContract Category = "contract"
	CategoryLegal    Category = "legal"
	CategoryMemo     Category = "memo"
	CategoryReport   Category = "report"
	CategoryOther    Category = "other"
)

// Categories returns the fixed category set in canonical order. The order
// doubles as the final deterministic tie-break during fusion.
func Categories() []Category {
	return []Category{
		CategoryInvoice,
		CategoryContract,
		CategoryLegal,
		CategoryMemo,
		CategoryReport,
		CategoryOther,
	}
}

// NumCategories is the size of the fixed category set.
const NumCategories = 6

// ValidCategory reports whether s names one of the six fixed categories.
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryInvoice, CategoryContract, CategoryLegal,
		CategoryMemo, CategoryReport, CategoryOther:
		return true
	default:
		return false
	}
}

// CanonicalIndex returns the position of c in canonical order, or -1 for an
// unknown category.
func CanonicalIndex(c Category) int {
	for i, cat := range Categories() {
		if cat == c {
			return i
		}
	}
	return -1
}
