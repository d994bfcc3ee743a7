package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rigcheck/internal/testutil"
)

func TestFingerprint_StableAndOrderIndependent(t *testing.T) {
	a := NewState()
	require.NoError(t, a.Select(testutil.Ryzen9()))
	require.NoError(t, a.Select(testutil.RM1000x()))

	b := NewState()
	require.NoError(t, b.Select(testutil.RM1000x()))
	require.NoError(t, b.Select(testutil.Ryzen9()))

	fa := Fingerprint(a.Snapshot())
	assert.Len(t, fa, 64)
	assert.Equal(t, fa, Fingerprint(b.Snapshot()))
}

func TestFingerprint_IgnoresPrice(t *testing.T) {
	cheap := testutil.Ryzen9()
	cheap.Price = 1

	a := NewState()
	require.NoError(t, a.Select(testutil.Ryzen9()))
	b := NewState()
	require.NoError(t, b.Select(cheap))

	assert.Equal(t, Fingerprint(a.Snapshot()), Fingerprint(b.Snapshot()))
}

func TestFingerprint_DiffersBySelection(t *testing.T) {
	a := NewState()
	require.NoError(t, a.Select(testutil.Ryzen9()))
	b := NewState()
	require.NoError(t, b.Select(testutil.IntelI9()))

	assert.NotEqual(t, Fingerprint(a.Snapshot()), Fingerprint(b.Snapshot()))
	assert.NotEqual(t, Fingerprint(Snapshot{}), Fingerprint(a.Snapshot()))
}
