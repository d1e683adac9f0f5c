package options

import (
	"strings"

	"reflex/primitive"
)

// Categories lists conversion categories by name ("safe_number", "datetime", ...).
// The keywords "all" and "none" reset the set, and a leading "-" removes a
// category from what has been collected so far, so ["all", "-unsafe_number"]
// allows everything except lossy number conversions.
type Categories []string

// Resolve folds the names left to right into a category set.
// An empty list resolves to primitive.CategoryAll.
func (c Categories) Resolve() (primitive.CategoryEnum, error) {
	if len(c) == 0 {
		return primitive.CategoryAll, nil
	}

	res := primitive.CategoryEnum(primitive.CategoryNone)
	for _, name := range c {
		exclude := strings.HasPrefix(name, "-")

		category, err := primitive.ParseCategory(strings.TrimPrefix(name, "-"))
		if err != nil {
			return primitive.CategoryNone, err
		}

		switch {
		case exclude:
			res &^= category
		case category == primitive.CategoryAll, category == primitive.CategoryNone:
			res = category
		default:
			res |= category
		}
	}

	return res, nil
}
