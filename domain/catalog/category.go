package catalog

import (
	"sort"
	"strings"

	"github.com/inkwell-shop/storefront/domain/navigation"
)

// AllCategoriesValue is the value of the synthetic entry that disables the
// category filter.
const AllCategoriesValue = "all"

// AllCategoriesLabel is the label of the synthetic entry.
const AllCategoriesLabel = "All Categories"

// Category is one selectable entry of the category list.
type Category struct {
	label string
	value string
	image string
}

// NewCategory creates a Category.
func NewCategory(label, value, image string) Category {
	return Category{label: label, value: value, image: image}
}

// Label returns the display text.
func (c Category) Label() string { return c.label }

// Value returns the leaf slug without its leading separator.
func (c Category) Value() string { return c.value }

// Image returns a representative image URL, or empty when none exists.
func (c Category) Image() string { return c.image }

// CategoryKeys returns the lower-cased product category identifiers a leaf
// may be matched against, most specific first: its last slug segment, then
// its full value.
func CategoryKeys(leaf navigation.NavNode) []string {
	value := strings.TrimPrefix(leaf.Slug(), "/")
	segment := strings.ToLower(navigation.LastSegment(value))
	full := strings.ToLower(value)
	if segment == full {
		return []string{segment}
	}
	return []string{segment, full}
}

// DeriveCategories projects published leaf nodes into the category list.
//
// images maps a lower-cased product category identifier to the first image of
// the newest published product in that category. The result is sorted by
// label and always starts with the "All Categories" entry.
func DeriveCategories(leaves []navigation.NavNode, images map[string]string) []Category {
	categories := make([]Category, 0, len(leaves))
	for _, leaf := range leaves {
		if !leaf.Published() {
			continue
		}
		var image string
		for _, key := range CategoryKeys(leaf) {
			if img, ok := images[key]; ok {
				image = img
				break
			}
		}
		categories = append(categories, Category{
			label: leaf.Label(),
			value: strings.TrimPrefix(leaf.Slug(), "/"),
			image: image,
		})
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].label < categories[j].label
	})

	return append([]Category{{label: AllCategoriesLabel, value: AllCategoriesValue}}, categories...)
}
