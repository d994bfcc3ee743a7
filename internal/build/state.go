package build

import (
	"fmt"

	"github.com/roach88/rigcheck/internal/part"
)

// State is the mutable partial build for one session.
//
// Thread-safety: State is not safe for concurrent use. It is owned by a
// single interaction stream; wrap it (see internal/session) when shared.
type State struct {
	snap Snapshot
}

// NewState creates an empty build.
func NewState() *State {
	return &State{}
}

// FromSnapshot creates a build preloaded with the slots of s.
func FromSnapshot(s Snapshot) *State {
	return &State{snap: s}
}

// Select places c in its category's slot, replacing any prior selection.
// The only failure is a category outside the closed set.
func (st *State) Select(c part.Component) error {
	p := st.snap.slot(c.Category)
	if p == nil {
		return fmt.Errorf("select %q: %w: %q", c.ID, part.ErrUnknownCategory, c.Category)
	}
	cp := c.Clone()
	*p = &cp
	return nil
}

// Deselect clears the slot for cat. Clearing an empty or unknown slot is a no-op.
func (st *State) Deselect(cat part.Category) {
	if p := st.snap.slot(cat); p != nil {
		*p = nil
	}
}

// Snapshot returns a read-only copy of the current selection.
func (st *State) Snapshot() Snapshot {
	return st.snap
}

// Reset clears every slot.
func (st *State) Reset() {
	st.snap = Snapshot{}
}
