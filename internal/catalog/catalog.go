package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/rigcheck/internal/part"
)

// ErrNotFound is returned when a component ID is not in the catalog.
var ErrNotFound = errors.New("component not found")

// Catalog maps each category to its components in display order.
type Catalog struct {
	parts map[part.Category][]part.Component
}

// New builds a catalog from per-category lists. Lists are copied.
// Categories outside the closed set are dropped; use Validate first to
// report them.
func New(parts map[part.Category][]part.Component) *Catalog {
	c := &Catalog{parts: make(map[part.Category][]part.Component, len(parts))}
	for cat, list := range parts {
		if !cat.Valid() {
			continue
		}
		cp := make([]part.Component, len(list))
		for i, p := range list {
			cp[i] = p.Clone()
		}
		c.parts[cat] = cp
	}
	return c
}

// Categories returns the categories with at least one component, in
// canonical order.
func (c *Catalog) Categories() []part.Category {
	var out []part.Category
	for _, cat := range part.Categories {
		if len(c.parts[cat]) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Parts returns a copy of the components in cat.
func (c *Catalog) Parts(cat part.Category) []part.Component {
	list := c.parts[cat]
	out := make([]part.Component, len(list))
	for i, p := range list {
		out[i] = p.Clone()
	}
	return out
}

// All returns every component grouped by category in canonical order.
func (c *Catalog) All() map[part.Category][]part.Component {
	out := make(map[part.Category][]part.Component, len(c.parts))
	for cat := range c.parts {
		out[cat] = c.Parts(cat)
	}
	return out
}

// Len returns the total number of components.
func (c *Catalog) Len() int {
	n := 0
	for _, list := range c.parts {
		n += len(list)
	}
	return n
}

// Lookup finds the component with id in cat.
func (c *Catalog) Lookup(cat part.Category, id string) (part.Component, error) {
	for _, p := range c.parts[cat] {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return part.Component{}, fmt.Errorf("%w: %s/%s", ErrNotFound, cat, id)
}

// Search returns the components in cat whose name contains query.
// Matching is case-insensitive and Unicode-normalised; an empty query
// returns every component.
func (c *Catalog) Search(cat part.Category, query string) []part.Component {
	needle := fold(query)
	if needle == "" {
		return c.Parts(cat)
	}
	var out []part.Component
	for _, p := range c.parts[cat] {
		if strings.Contains(fold(p.Name), needle) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// fold normalises s for matching: NFC, case folded, trimmed.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
