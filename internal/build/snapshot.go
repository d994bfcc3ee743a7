package build

import "github.com/roach88/rigcheck/internal/part"

// Snapshot is a fixed record with one optional slot per category.
// A nil slot means nothing is selected for that category.
// Components referenced by a Snapshot are never mutated.
type Snapshot struct {
	Processor    *part.Component `json:"processor,omitempty"`
	GraphicsCard *part.Component `json:"graphics_card,omitempty"`
	Motherboard  *part.Component `json:"motherboard,omitempty"`
	Memory       *part.Component `json:"memory,omitempty"`
	Storage      *part.Component `json:"storage,omitempty"`
	PowerSupply  *part.Component `json:"power_supply,omitempty"`
	Enclosure    *part.Component `json:"enclosure,omitempty"`
}

// slot returns the address of the field for cat, or nil for an unknown category.
func (s *Snapshot) slot(cat part.Category) **part.Component {
	switch cat {
	case part.Processor:
		return &s.Processor
	case part.GraphicsCard:
		return &s.GraphicsCard
	case part.Motherboard:
		return &s.Motherboard
	case part.Memory:
		return &s.Memory
	case part.Storage:
		return &s.Storage
	case part.PowerSupply:
		return &s.PowerSupply
	case part.Enclosure:
		return &s.Enclosure
	}
	return nil
}

// Get returns the component selected for cat.
func (s Snapshot) Get(cat part.Category) (*part.Component, bool) {
	p := s.slot(cat)
	if p == nil || *p == nil {
		return nil, false
	}
	return *p, true
}

// Components returns the selected components in canonical category order.
func (s Snapshot) Components() []*part.Component {
	out := make([]*part.Component, 0, len(part.Categories))
	for _, cat := range part.Categories {
		if c, ok := s.Get(cat); ok {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of selected slots.
func (s Snapshot) Len() int {
	return len(s.Components())
}

// IsEmpty reports whether no slot is selected.
func (s Snapshot) IsEmpty() bool {
	return s.Len() == 0
}

// Selection maps each selected category to its component ID.
func (s Snapshot) Selection() map[part.Category]string {
	sel := make(map[part.Category]string)
	for _, c := range s.Components() {
		sel[c.Category] = c.ID
	}
	return sel
}
