package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/part"
	"github.com/roach88/rigcheck/internal/testutil"
)

func TestManagerCreateGetDelete(t *testing.T) {
	m, err := NewManager(4, WithIDGenerator(NewFixedGenerator("a", "b")))
	require.NoError(t, err)

	s := m.Create()
	assert.Equal(t, "a", s.ID())
	assert.Equal(t, 1, m.Len())

	got, err := m.Get("a")
	require.NoError(t, err)
	assert.Same(t, s, got)

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))

	_, err = m.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerEvictsLeastRecentlyUsed(t *testing.T) {
	m, err := NewManager(2, WithIDGenerator(NewFixedGenerator("a", "b", "c")))
	require.NoError(t, err)

	m.Create()
	m.Create()

	// Touch "a" so "b" becomes the eviction candidate.
	_, err = m.Get("a")
	require.NoError(t, err)

	m.Create()
	assert.Equal(t, 2, m.Len())

	_, err = m.Get("b")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get("a")
	assert.NoError(t, err)
	_, err = m.Get("c")
	assert.NoError(t, err)
}

func TestManagerDefaultLimit(t *testing.T) {
	m, err := NewManager(0)
	require.NoError(t, err)

	for i := 0; i < DefaultLimit+1; i++ {
		m.Create()
	}
	assert.Equal(t, DefaultLimit, m.Len())
}

func TestSessionSelectDeselect(t *testing.T) {
	s := newSession("x")

	require.NoError(t, s.Select(testutil.IntelI9()))
	require.NoError(t, s.Select(testutil.StrixZ790()))
	assert.Equal(t, 2, s.Snapshot().Len())

	s.Deselect(part.Processor)
	_, ok := s.Snapshot().Get(part.Processor)
	assert.False(t, ok)

	err := s.Select(part.Component{ID: "t", Category: "toaster"})
	assert.ErrorIs(t, err, part.ErrUnknownCategory)
}

func TestSessionResetAndLoad(t *testing.T) {
	s := newSession("x")
	require.NoError(t, s.Select(testutil.Ryzen9()))

	s.Reset()
	assert.True(t, s.Snapshot().IsEmpty())

	saved := build.NewState()
	require.NoError(t, saved.Select(testutil.RTX4090()))
	require.NoError(t, saved.Select(testutil.MeshifyC()))
	s.Load(saved.Snapshot())

	assert.Equal(t, saved.Snapshot(), s.Snapshot())

	// The session owns its own state after Load.
	require.NoError(t, s.Select(testutil.RM1000x()))
	assert.Equal(t, 2, saved.Snapshot().Len())
}

func TestSessionConcurrentSelect(t *testing.T) {
	s := newSession("x")
	parts := []part.Component{
		testutil.IntelI9(), testutil.RTX4090(), testutil.StrixZ790(),
		testutil.TridentZ5(), testutil.Samsung980Pro(), testutil.RM1000x(),
		testutil.MeshifyC(),
	}

	var wg sync.WaitGroup
	for _, p := range parts {
		wg.Add(1)
		go func(p part.Component) {
			defer wg.Done()
			_ = s.Select(p)
			_ = s.Snapshot()
		}(p)
	}
	wg.Wait()

	assert.Equal(t, len(part.Categories), s.Snapshot().Len())
}
