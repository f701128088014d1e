// SPDX-License-Identifier: MIT

// Package memspace - dual-state buffer.
//
// Purpose:
//   - Own n elements in a primary space and, when that space is not
//     host-addressable, an explicit host mirror of identical length.
//   - Track freshness of each side so a read from outdated data is a checked
//     error instead of a silent wrong answer.
//
// State machine (buffers with a mirror):
//
//	            PrimaryMut/Overwrite            HostMut/Overwrite
//	in sync  ---------------------->  mirror stale          primary stale
//	   ^          CopyToMirror              |                     |
//	   +------------------------------------+                     |
//	   +-----------------------------------------------------------+
//	              CopyToPrimary
//
// Buffers without a mirror alias primary and host; they are always in sync and
// both copy operations are no-ops.

package memspace

import "unsafe"

// Element is the set of element types a Buffer may hold.
type Element interface {
	~int | ~int32 | ~int64 | ~float64
}

// Buffer owns typed storage in one memory space plus an optional host mirror.
// A Buffer is not safe for concurrent use.
type Buffer[T Element] struct {
	mgr      *Manager
	space    Space
	primary  []T
	mirror   []T // aliases primary when the space is host-addressable
	hasMir   bool
	priStale bool
	mirStale bool
	released bool
}

// Allocate reserves n elements of T in space, plus a host mirror when space
// is not host-addressable. A nil mgr selects Default().
//
// Errors:
//   - ErrNegativeLength for n < 0.
//   - ErrUnknownSpace when space is not registered.
//   - ErrOutOfMemory when the space (or the host, for the mirror) is exhausted.
//
// On failure nothing stays reserved.
func Allocate[T Element](mgr *Manager, space Space, n int) (*Buffer[T], error) {
	if mgr == nil {
		mgr = Default()
	}
	if n < 0 {
		return nil, bufferErrorf("Allocate", ErrNegativeLength)
	}

	space = mgr.Resolve(space)
	hostAddr, err := mgr.HostAddressable(space)
	if err != nil {
		return nil, bufferErrorf("Allocate", err)
	}

	bytes := byteSize[T](n)
	if err = mgr.reserve(space, bytes); err != nil {
		return nil, bufferErrorf("Allocate", err)
	}

	b := &Buffer[T]{mgr: mgr, space: space, primary: make([]T, n)}
	if hostAddr {
		b.mirror = b.primary

		return b, nil
	}

	if err = mgr.reserve(Host, bytes); err != nil {
		mgr.release(space, bytes)

		return nil, bufferErrorf("Allocate(mirror)", err)
	}
	b.mirror = make([]T, n)
	b.hasMir = true

	return b, nil
}

func byteSize[T Element](n int) int64 {
	var zero T

	return int64(n) * int64(unsafe.Sizeof(zero))
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int { return len(b.primary) }

// Space returns the primary (resolved) space.
func (b *Buffer[T]) Space() Space { return b.space }

// HasMirror reports whether a separate host mirror exists.
func (b *Buffer[T]) HasMirror() bool { return b.hasMir }

// InSync reports whether neither side is stale.
func (b *Buffer[T]) InSync() bool { return !b.priStale && !b.mirStale }

// PrimaryStale reports whether the mirror holds newer data than the primary.
func (b *Buffer[T]) PrimaryStale() bool { return b.priStale }

// MirrorStale reports whether the primary holds newer data than the mirror.
func (b *Buffer[T]) MirrorStale() bool { return b.mirStale }

// Released reports whether Release has been called.
func (b *Buffer[T]) Released() bool { return b.released }

// Primary returns the primary storage for reading. Kernels run on this side.
func (b *Buffer[T]) Primary() ([]T, error) {
	if b.released {
		return nil, bufferErrorf("Primary", ErrReleased)
	}
	if b.priStale {
		return nil, bufferErrorf("Primary", ErrStale)
	}

	return b.primary, nil
}

// PrimaryMut returns the primary storage for a partial update and marks the
// mirror stale.
func (b *Buffer[T]) PrimaryMut() ([]T, error) {
	p, err := b.Primary()
	if err != nil {
		return nil, err
	}
	if b.hasMir {
		b.mirStale = true
	}

	return p, nil
}

// PrimaryOverwrite returns the primary storage for a write that replaces every
// element. The primary becomes authoritative regardless of its previous state.
func (b *Buffer[T]) PrimaryOverwrite() ([]T, error) {
	if b.released {
		return nil, bufferErrorf("PrimaryOverwrite", ErrReleased)
	}
	b.priStale = false
	if b.hasMir {
		b.mirStale = true
	}

	return b.primary, nil
}

// Host returns the host-addressable side for reading.
func (b *Buffer[T]) Host() ([]T, error) {
	if b.released {
		return nil, bufferErrorf("Host", ErrReleased)
	}
	if b.mirStale {
		return nil, bufferErrorf("Host", ErrStale)
	}

	return b.mirror, nil
}

// HostMut returns the host side for a partial update and marks the primary stale.
func (b *Buffer[T]) HostMut() ([]T, error) {
	h, err := b.Host()
	if err != nil {
		return nil, err
	}
	if b.hasMir {
		b.priStale = true
	}

	return h, nil
}

// HostOverwrite returns the host side for a write that replaces every element.
func (b *Buffer[T]) HostOverwrite() ([]T, error) {
	if b.released {
		return nil, bufferErrorf("HostOverwrite", ErrReleased)
	}
	b.mirStale = false
	if b.hasMir {
		b.priStale = true
	}

	return b.mirror, nil
}

// CopyToPrimary copies mirror → primary. No-op without a mirror.
func (b *Buffer[T]) CopyToPrimary() error {
	if b.released {
		return bufferErrorf("CopyToPrimary", ErrReleased)
	}
	if !b.hasMir {
		return nil
	}
	if b.mirStale {
		// the mirror is older than the primary; copying would lose data
		return bufferErrorf("CopyToPrimary", ErrStale)
	}
	copy(b.primary, b.mirror)
	b.priStale = false

	return nil
}

// CopyToMirror copies primary → mirror. No-op without a mirror.
func (b *Buffer[T]) CopyToMirror() error {
	if b.released {
		return bufferErrorf("CopyToMirror", ErrReleased)
	}
	if !b.hasMir {
		return nil
	}
	if b.priStale {
		return bufferErrorf("CopyToMirror", ErrStale)
	}
	copy(b.mirror, b.primary)
	b.mirStale = false

	return nil
}

// Clone allocates a new buffer in the same space and duplicates both sides
// together with their freshness tags.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	if b.released {
		return nil, bufferErrorf("Clone", ErrReleased)
	}
	c, err := Allocate[T](b.mgr, b.space, len(b.primary))
	if err != nil {
		return nil, err
	}
	copy(c.primary, b.primary)
	if c.hasMir {
		copy(c.mirror, b.mirror)
	}
	c.priStale, c.mirStale = b.priStale, b.mirStale

	return c, nil
}

// CopyFrom copies both sides and tags of src into b. Lengths must match.
func (b *Buffer[T]) CopyFrom(src *Buffer[T]) error {
	if b.released || src.released {
		return bufferErrorf("CopyFrom", ErrReleased)
	}
	if len(b.primary) != len(src.primary) {
		return bufferErrorf("CopyFrom", ErrLengthMismatch)
	}
	copy(b.primary, src.primary)
	if b.hasMir {
		copy(b.mirror, src.mirror)
		b.priStale, b.mirStale = src.priStale, src.mirStale
	} else if src.priStale {
		// src mirror is authoritative and b has only one side
		copy(b.primary, src.mirror)
	}

	return nil
}

// Release returns the storage to the Manager. Calling Release twice is safe.
func (b *Buffer[T]) Release() {
	if b.released {
		return
	}
	bytes := byteSize[T](len(b.primary))
	b.mgr.release(b.space, bytes)
	if b.hasMir {
		b.mgr.release(Host, bytes)
	}
	b.primary, b.mirror = nil, nil
	b.released = true
}
