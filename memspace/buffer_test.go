// Package memspace_test contains unit tests for memory spaces and buffers.
package memspace_test

import (
	"testing"

	"github.com/katalvlaran/sparsekkt/memspace"
	"github.com/stretchr/testify/require"
)

// MustBuffer allocates a float64 buffer or fails the test.
func MustBuffer(t *testing.T, mgr *memspace.Manager, s memspace.Space, n int) *memspace.Buffer[float64] {
	t.Helper()
	b, err := memspace.Allocate[float64](mgr, s, n)
	require.NoError(t, err)

	return b
}

func TestAllocate_HostHasNoMirror(t *testing.T) {
	mgr := memspace.NewManager()
	b := MustBuffer(t, mgr, memspace.Host, 4)

	require.False(t, b.HasMirror())
	require.Equal(t, memspace.Host, b.Space())
	require.Equal(t, 4, b.Len())
	require.EqualValues(t, 32, mgr.InUse(memspace.Host))

	// primary and host alias each other
	p, err := b.PrimaryMut()
	require.NoError(t, err)
	p[2] = 7
	h, err := b.Host()
	require.NoError(t, err)
	require.Equal(t, 7.0, h[2])

	// copies are no-ops
	require.NoError(t, b.CopyToPrimary())
	require.NoError(t, b.CopyToMirror())
	require.True(t, b.InSync())
}

func TestAllocate_DeviceCarriesMirror(t *testing.T) {
	mgr := memspace.NewManager()
	b := MustBuffer(t, mgr, memspace.Device, 3)

	require.True(t, b.HasMirror())
	require.EqualValues(t, 24, mgr.InUse(memspace.Device))
	require.EqualValues(t, 24, mgr.InUse(memspace.Host))

	b.Release()
	require.EqualValues(t, 0, mgr.InUse(memspace.Device))
	require.EqualValues(t, 0, mgr.InUse(memspace.Host))
	require.True(t, b.Released())
	b.Release() // second release is a no-op
}

func TestAllocate_Errors(t *testing.T) {
	mgr := memspace.NewManager(memspace.WithDeviceCapacity(16))

	_, err := memspace.Allocate[float64](mgr, memspace.Space("TEXTURE"), 1)
	require.ErrorIs(t, err, memspace.ErrUnknownSpace)
	require.ErrorIs(t, err, memspace.ErrAllocation)

	_, err = memspace.Allocate[float64](mgr, memspace.Device, 3)
	require.ErrorIs(t, err, memspace.ErrOutOfMemory)
	require.ErrorIs(t, err, memspace.ErrAllocation)
	require.EqualValues(t, 0, mgr.InUse(memspace.Device))

	_, err = memspace.Allocate[int](mgr, memspace.Host, -1)
	require.ErrorIs(t, err, memspace.ErrNegativeLength)
}

func TestAllocate_MirrorFailureRollsBackPrimary(t *testing.T) {
	mgr := memspace.NewManager(memspace.WithHostCapacity(8))

	_, err := memspace.Allocate[float64](mgr, memspace.Device, 2)
	require.ErrorIs(t, err, memspace.ErrOutOfMemory)
	require.EqualValues(t, 0, mgr.InUse(memspace.Device))
	require.EqualValues(t, 0, mgr.InUse(memspace.Host))
}

func TestWithoutDevice_ResolvesToHost(t *testing.T) {
	mgr := memspace.NewManager(memspace.WithoutDevice())
	b := MustBuffer(t, mgr, memspace.Device, 2)

	require.False(t, mgr.DeviceEnabled())
	require.Equal(t, memspace.Host, b.Space())
	require.False(t, b.HasMirror())
}

func TestBuffer_StaleTracking(t *testing.T) {
	b := MustBuffer(t, memspace.NewManager(), memspace.Device, 3)

	// host write makes the primary stale
	h, err := b.HostMut()
	require.NoError(t, err)
	h[0], h[1], h[2] = 1, 2, 3

	_, err = b.Primary()
	require.ErrorIs(t, err, memspace.ErrStale)
	require.ErrorIs(t, b.CopyToMirror(), memspace.ErrStale)

	require.NoError(t, b.CopyToPrimary())
	p, err := b.Primary()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, p)

	// kernel write makes the mirror stale
	p, err = b.PrimaryMut()
	require.NoError(t, err)
	p[1] = 20
	_, err = b.Host()
	require.ErrorIs(t, err, memspace.ErrStale)
	require.ErrorIs(t, b.CopyToPrimary(), memspace.ErrStale)

	require.NoError(t, b.CopyToMirror())
	h, err = b.Host()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 20, 3}, h)
	require.True(t, b.InSync())
}

func TestBuffer_OverwriteIgnoresStaleness(t *testing.T) {
	b := MustBuffer(t, memspace.NewManager(), memspace.Device, 2)

	_, err := b.HostMut()
	require.NoError(t, err)

	p, err := b.PrimaryOverwrite()
	require.NoError(t, err)
	p[0], p[1] = 5, 6

	_, err = b.Host()
	require.ErrorIs(t, err, memspace.ErrStale)
	require.NoError(t, b.CopyToMirror())

	h, err := b.HostOverwrite()
	require.NoError(t, err)
	require.Equal(t, []float64{5, 6}, h)
	_, err = b.Primary()
	require.ErrorIs(t, err, memspace.ErrStale)
}

func TestBuffer_CloneIndependence(t *testing.T) {
	mgr := memspace.NewManager()
	b := MustBuffer(t, mgr, memspace.Device, 2)
	h, err := b.HostOverwrite()
	require.NoError(t, err)
	h[0], h[1] = 1, 2
	require.NoError(t, b.CopyToPrimary())

	c, err := b.Clone()
	require.NoError(t, err)
	require.True(t, c.HasMirror())
	require.EqualValues(t, 32, mgr.InUse(memspace.Device))

	cp, err := c.PrimaryMut()
	require.NoError(t, err)
	cp[0] = 100

	bp, err := b.Primary()
	require.NoError(t, err)
	require.Equal(t, 1.0, bp[0])
}

func TestBuffer_ReleasedAccess(t *testing.T) {
	b := MustBuffer(t, memspace.NewManager(), memspace.Host, 1)
	b.Release()

	_, err := b.Primary()
	require.ErrorIs(t, err, memspace.ErrReleased)
	_, err = b.Host()
	require.ErrorIs(t, err, memspace.ErrReleased)
	_, err = b.Clone()
	require.ErrorIs(t, err, memspace.ErrReleased)
	require.ErrorIs(t, b.CopyToMirror(), memspace.ErrReleased)
}

func TestBuffer_CopyFrom(t *testing.T) {
	mgr := memspace.NewManager()
	src := MustBuffer(t, mgr, memspace.Device, 2)
	h, err := src.HostOverwrite()
	require.NoError(t, err)
	h[0], h[1] = 3, 4

	dst := MustBuffer(t, mgr, memspace.Host, 2)
	require.NoError(t, dst.CopyFrom(src))
	got, err := dst.Host()
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, got)

	short := MustBuffer(t, mgr, memspace.Host, 1)
	require.ErrorIs(t, short.CopyFrom(src), memspace.ErrLengthMismatch)
}

func TestParseSpaceAndDefault(t *testing.T) {
	s, err := memspace.ParseSpace(" device ")
	require.NoError(t, err)
	require.Equal(t, memspace.Device, s)

	_, err = memspace.ParseSpace("gpu")
	require.ErrorIs(t, err, memspace.ErrUnknownSpace)

	t.Setenv(memspace.EnvSpace, "Device")
	require.Equal(t, memspace.Device, memspace.DefaultSpace())
	t.Setenv(memspace.EnvSpace, "nonsense")
	require.Equal(t, memspace.Host, memspace.DefaultSpace())
}

func TestCapacityOptionPanics(t *testing.T) {
	require.Panics(t, func() { memspace.WithDeviceCapacity(-1) })
	require.Panics(t, func() { memspace.WithHostCapacity(-1) })
}
