package distribution

import (
	"fmt"
	"slices"
	"strings"
)

// Category identifies one of the home price segments.
type Category string

const (
	Starter      Category = "Starter"
	Intermediate Category = "Intermediate"
	Luxury       Category = "Luxury"
)

// CategoryCountRows is the fixed number of rows in a count table.
const CategoryCountRows = 3

var orderedCategories = [CategoryCountRows]Category{Starter, Intermediate, Luxury}

// Categories returns all categories in display order. The slice is a fresh copy.
func Categories() []Category {
	return slices.Clone(orderedCategories[:])
}

// ParseCategory resolves a category name, case-insensitively.
func ParseCategory(name string) (Category, error) {
	for _, c := range orderedCategories {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// Valid reports whether c is one of the canonical categories.
func (c Category) Valid() bool {
	for _, known := range orderedCategories {
		if c == known {
			return true
		}
	}
	return false
}
