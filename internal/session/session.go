package session

import (
	"sync"

	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/part"
)

// Session is one client's build in progress. All methods are safe for
// concurrent use.
type Session struct {
	id string

	mu    sync.Mutex
	state *build.State
}

func newSession(id string) *Session {
	return &Session{id: id, state: build.NewState()}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Select places c in its category slot.
func (s *Session) Select(c part.Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Select(c)
}

// Deselect empties the slot for cat.
func (s *Session) Deselect(cat part.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Deselect(cat)
}

// Snapshot returns a read-only copy of the current build.
func (s *Session) Snapshot() build.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Reset clears every slot.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Reset()
}

// Load replaces the whole build with snap.
func (s *Session) Load(snap build.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = build.FromSnapshot(snap)
}
