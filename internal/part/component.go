package part

import (
	"fmt"
	"strings"
)

// Component is one purchasable part.
type Component struct {
	ID                 string            `json:"id" yaml:"id"`
	Name               string            `json:"name" yaml:"name"`
	Category           Category          `json:"category" yaml:"category"`
	Price              int64             `json:"price" yaml:"price"`
	PowerDrawWatts     int               `json:"power_draw_watts,omitempty" yaml:"power_draw_watts,omitempty"`
	PowerSupplyWattage int               `json:"power_supply_wattage,omitempty" yaml:"power_supply_wattage,omitempty"`
	Socket             string            `json:"socket,omitempty" yaml:"socket,omitempty"`
	FormFactor         string            `json:"form_factor,omitempty" yaml:"form_factor,omitempty"`
	Specs              map[string]string `json:"specs,omitempty" yaml:"specs,omitempty"`
}

// FieldError describes one invalid field on a component.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FromLegacyPower converts the sign-overloaded power convention
// (positive = draw, negative = supply capacity) into unsigned fields.
// The category decides which field the magnitude belongs to; a value with
// the wrong sign for its category is dropped.
func FromLegacyPower(cat Category, watts int) (draw, wattage int) {
	if cat == PowerSupply {
		if watts < 0 {
			return 0, -watts
		}
		return 0, watts
	}
	if watts > 0 {
		return watts, 0
	}
	return 0, 0
}

// Validate returns every field problem on c. An empty result means c is valid.
func (c Component) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(c.ID) == "" {
		errs = append(errs, FieldError{Field: "id", Message: "id is required"})
	}
	if !c.Category.Valid() {
		errs = append(errs, FieldError{Field: "category", Message: fmt.Sprintf("unknown category %q", c.Category)})
	}
	if c.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: fmt.Sprintf("price must be non-negative, got %d", c.Price)})
	}
	if c.PowerDrawWatts < 0 {
		errs = append(errs, FieldError{Field: "power_draw_watts", Message: "power draw must be non-negative"})
	}
	if c.PowerSupplyWattage < 0 {
		errs = append(errs, FieldError{Field: "power_supply_wattage", Message: "wattage must be non-negative"})
	}

	if c.Category == PowerSupply && c.PowerDrawWatts != 0 {
		errs = append(errs, FieldError{Field: "power_draw_watts", Message: "power supplies do not draw power"})
	}
	if c.Category != PowerSupply && c.PowerSupplyWattage != 0 {
		errs = append(errs, FieldError{Field: "power_supply_wattage", Message: "only power supplies carry a wattage"})
	}

	return errs
}

// Clone returns a copy of c that shares no mutable state with it.
func (c Component) Clone() Component {
	out := c
	if c.Specs != nil {
		out.Specs = make(map[string]string, len(c.Specs))
		for k, v := range c.Specs {
			out.Specs[k] = v
		}
	}
	return out
}
