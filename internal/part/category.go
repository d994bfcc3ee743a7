package part

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category name is outside the closed set.
var ErrUnknownCategory = errors.New("unknown component category")

// Category identifies a build slot.
type Category string

const (
	Processor    Category = "processor"
	GraphicsCard Category = "graphics-card"
	Motherboard  Category = "motherboard"
	Memory       Category = "memory"
	Storage      Category = "storage"
	PowerSupply  Category = "power-supply"
	Enclosure    Category = "enclosure"
)

// Categories lists every category in canonical display order.
var Categories = []Category{
	Processor,
	GraphicsCard,
	Motherboard,
	Memory,
	Storage,
	PowerSupply,
	Enclosure,
}

// aliases maps the short names used by the storefront UI to categories.
var aliases = map[string]Category{
	"cpu":  Processor,
	"gpu":  GraphicsCard,
	"mb":   Motherboard,
	"ram":  Memory,
	"psu":  PowerSupply,
	"case": Enclosure,
}

// ParseCategory resolves a canonical name or a short alias.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	c := Category(name)
	if c.Valid() {
		return c, nil
	}
	if c, ok := aliases[name]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is one of the closed set.
func (c Category) Valid() bool {
	switch c {
	case Processor, GraphicsCard, Motherboard, Memory, Storage, PowerSupply, Enclosure:
		return true
	}
	return false
}

// Index returns the position of c in Categories, or -1.
func (c Category) Index() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// ConsumesPower reports whether components of this category draw power.
// Enclosures and motherboards are listed as consumers with a zero default
// so catalogs may still record a draw for fans or chipsets.
func (c Category) ConsumesPower() bool {
	return c.Valid() && c != PowerSupply
}

func (c Category) String() string {
	return string(c)
}
