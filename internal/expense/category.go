package expense

import (
	"fmt"
	"strings"
)

// Category classifies an expense, e.g. gas or internet.
type Category string

func (c Category) String() string { return string(c) }

// Catalog is the ordered set of categories a household splits. The order drives
// report columns.
type Catalog []Category

// DefaultCatalog returns the four utility categories used when a household does not
// declare its own.
func DefaultCatalog() Catalog {
	return Catalog{"gas", "electricidad", "basuras", "internet"}
}

// NewCatalog builds a catalog from raw ids, normalised to lower case.
func NewCatalog(ids ...string) (Catalog, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[Category]struct{}, len(ids))
	catalog := make(Catalog, 0, len(ids))

	for i, id := range ids {
		c := Category(strings.ToLower(strings.TrimSpace(id)))
		if c == "" {
			return nil, fmt.Errorf("category %d: %w", i+1, ErrMissingCategory)
		}

		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("category %q: %w", c, ErrDuplicateCategory)
		}

		seen[c] = struct{}{}
		catalog = append(catalog, c)
	}

	return catalog, nil
}

func (c Catalog) Contains(cat Category) bool {
	for _, known := range c {
		if known == cat {
			return true
		}
	}

	return false
}

// Parse resolves user input to a catalog category, ignoring case and surrounding space.
func (c Catalog) Parse(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &FieldError{Field: "category", Err: ErrMissingCategory}
	}

	for _, known := range c {
		if strings.EqualFold(string(known), s) {
			return known, nil
		}
	}

	return "", &FieldError{Field: "category", Value: s, Err: ErrUnknownCategory}
}

func (c Catalog) Strings() []string {
	out := make([]string, len(c))
	for i, cat := range c {
		out[i] = string(cat)
	}

	return out
}
