// SPDX-License-Identifier: MIT

// Package sparse - general triplet matrix: storage & lifecycle.
//
// Purpose:
//   - Own three parallel buffers (row, col, value) of length nnz in one memory space.
//   - Populate them on the host mirror (EditStructure, EditValues) and publish
//     them to the primary space with CopyToDevice.
//   - Keep the derived Row-Start Index coherent: structural edits drop it.
//
// Complexity quicksheet:
//   - NewTriplet: O(nnz) zero-init; EditStructure: O(nnz) copy and range check;
//     Copy: O(nnz); Release: O(1).

package sparse

import (
	"slices"

	"github.com/katalvlaran/sparsekkt/memspace"
)

// Triplet is a general rows×cols sparse matrix stored as nnz (row, col, value)
// triplets. Shape and nnz are fixed at construction.
//
// Invariants:
//   - nnz == 0 whenever rows == 0 or cols == 0.
//   - every stored index lies inside the shape (enforced by every writer).
//
// A Triplet is not safe for concurrent use.
type Triplet struct {
	nrows, ncols, nnz int

	cfg config

	irow *memspace.Buffer[int]
	jcol *memspace.Buffer[int]
	vals *memspace.Buffer[float64]

	starts   *RowStarts // nil until first needed
	released bool
}

// NewTriplet allocates a rows×cols matrix with room for nnz triplets. All
// indices and values start at zero, so the buffers are in sync.
//
// Errors:
//   - ErrInvalidShape for negative rows, cols or nnz.
//   - memspace.ErrAllocation family when a buffer cannot be reserved; no
//     partially allocated matrix is returned.
func NewTriplet(rows, cols, nnz int, opts ...Option) (*Triplet, error) {
	return newTriplet(opNew, rows, cols, nnz, gatherOptions(opts...))
}

// NewTripletFromEntries allocates a rows×cols matrix holding entries in the
// given order and publishes them to the primary space.
//
// Errors:
//   - ErrOutOfRange when an entry lies outside the shape.
//   - any error of NewTriplet.
func NewTripletFromEntries(rows, cols int, entries []Entry, opts ...Option) (*Triplet, error) {
	return newTripletFromEntries(opNew, rows, cols, entries, gatherOptions(opts...))
}

func newTriplet(tag string, rows, cols, nnz int, cfg config) (*Triplet, error) {
	if rows < 0 || cols < 0 || nnz < 0 {
		return nil, sparseErrorf(tag, ErrInvalidShape)
	}
	if rows == 0 || cols == 0 {
		nnz = 0
	}

	m := &Triplet{nrows: rows, ncols: cols, nnz: nnz, cfg: cfg}
	var err error
	if m.irow, err = memspace.Allocate[int](cfg.mgr, cfg.space, nnz); err != nil {
		return nil, sparseErrorf(tag, err)
	}
	if m.jcol, err = memspace.Allocate[int](cfg.mgr, cfg.space, nnz); err != nil {
		m.irow.Release()

		return nil, sparseErrorf(tag, err)
	}
	if m.vals, err = memspace.Allocate[float64](cfg.mgr, cfg.space, nnz); err != nil {
		m.irow.Release()
		m.jcol.Release()

		return nil, sparseErrorf(tag, err)
	}

	return m, nil
}

func newTripletFromEntries(tag string, rows, cols int, entries []Entry, cfg config) (*Triplet, error) {
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, sparseErrorf(tag, ErrOutOfRange)
		}
	}
	m, err := newTriplet(tag, rows, cols, len(entries), cfg)
	if err != nil {
		return nil, err
	}

	// fresh buffers are never released, so the overwrite accessors cannot fail
	ri, _ := m.irow.HostOverwrite()
	ci, _ := m.jcol.HostOverwrite()
	vi, _ := m.vals.HostOverwrite()
	for k, e := range entries {
		ri[k], ci[k], vi[k] = e.Row, e.Col, e.Value
	}
	if err = m.CopyToDevice(); err != nil {
		m.Release()

		return nil, sparseErrorf(tag, err)
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Triplet) Rows() int { return m.nrows }

// Cols returns the number of columns.
func (m *Triplet) Cols() int { return m.ncols }

// Dims returns (rows, cols).
func (m *Triplet) Dims() (r, c int) { return m.nrows, m.ncols }

// NNZ returns the number of stored triplets.
func (m *Triplet) NNZ() int { return m.nnz }

// Space returns the resolved primary memory space of the buffers.
func (m *Triplet) Space() memspace.Space { return m.vals.Space() }

// EditStructure hands fn copies of the host-side row and column index arrays
// for population. The copies are range-checked and written back only when
// every index lies inside the shape, so a rejected edit leaves the matrix
// unchanged. On success the cached Row-Start Index is dropped; call
// CopyToDevice before running kernels.
//
// Errors:
//   - memspace.ErrStale when the host side is outdated (call CopyFromDevice first).
//   - ErrOutOfRange when fn stored an index outside the shape.
func (m *Triplet) EditStructure(fn func(rows, cols []int)) error {
	return m.editStructure(fn, nil)
}

// editStructure runs fn on scratch copies of the indices, validates them
// (range, then check when non-nil) and commits them to the host side.
func (m *Triplet) editStructure(fn func(rows, cols []int), check func(rows, cols []int) error) error {
	rows, err := m.irow.Host()
	if err != nil {
		return sparseErrorf(opEditStructure, err)
	}
	cols, err := m.jcol.Host()
	if err != nil {
		return sparseErrorf(opEditStructure, err)
	}

	newRows, newCols := slices.Clone(rows), slices.Clone(cols)
	fn(newRows, newCols)
	if err = validateIndices(newRows, newCols, m.nrows, m.ncols); err != nil {
		return sparseErrorf(opEditStructure, err)
	}
	if check != nil {
		if err = check(newRows, newCols); err != nil {
			return sparseErrorf(opEditStructure, err)
		}
	}

	// both sides were just read, so the mutable views cannot fail
	rows, _ = m.irow.HostMut()
	cols, _ = m.jcol.HostMut()
	copy(rows, newRows)
	copy(cols, newCols)
	m.invalidateRowStarts()

	return nil
}

// EditValues hands fn the host-side value array for in-place population.
// Call CopyToDevice before running kernels.
func (m *Triplet) EditValues(fn func(vals []float64)) error {
	vals, err := m.vals.HostMut()
	if err != nil {
		return sparseErrorf(opEditValues, err)
	}
	fn(vals)

	return nil
}

// Entries returns a copy of the triplets as seen on the host side.
// It does not synchronize: a stale host side yields memspace.ErrStale.
func (m *Triplet) Entries() ([]Entry, error) {
	rows, cols, vals, err := m.hostViews()
	if err != nil {
		return nil, sparseErrorf("Entries", err)
	}
	out := make([]Entry, m.nnz)
	for k := range out {
		out[k] = Entry{Row: rows[k], Col: cols[k], Value: vals[k]}
	}

	return out, nil
}

// CopyToDevice publishes host-side edits to the primary space. Buffers whose
// primary is already current are left untouched.
func (m *Triplet) CopyToDevice() error {
	if m.irow.PrimaryStale() {
		if err := m.irow.CopyToPrimary(); err != nil {
			return sparseErrorf(opSync, err)
		}
	}
	if m.jcol.PrimaryStale() {
		if err := m.jcol.CopyToPrimary(); err != nil {
			return sparseErrorf(opSync, err)
		}
	}
	if m.vals.PrimaryStale() {
		if err := m.vals.CopyToPrimary(); err != nil {
			return sparseErrorf(opSync, err)
		}
	}

	return nil
}

// CopyFromDevice refreshes the host mirror from the primary space. Buffers
// whose mirror is already current are left untouched.
func (m *Triplet) CopyFromDevice() error {
	if m.irow.MirrorStale() {
		if err := m.irow.CopyToMirror(); err != nil {
			return sparseErrorf(opSyncBack, err)
		}
	}
	if m.jcol.MirrorStale() {
		if err := m.jcol.CopyToMirror(); err != nil {
			return sparseErrorf(opSyncBack, err)
		}
	}
	if m.vals.MirrorStale() {
		if err := m.vals.CopyToMirror(); err != nil {
			return sparseErrorf(opSyncBack, err)
		}
	}

	return nil
}

// primaries returns the primary-side arrays kernels run on.
func (m *Triplet) primaries() (rows, cols []int, vals []float64, err error) {
	if rows, err = m.irow.Primary(); err != nil {
		return nil, nil, nil, err
	}
	if cols, err = m.jcol.Primary(); err != nil {
		return nil, nil, nil, err
	}
	if vals, err = m.vals.Primary(); err != nil {
		return nil, nil, nil, err
	}

	return rows, cols, vals, nil
}

// hostViews returns the host-side arrays without synchronizing.
func (m *Triplet) hostViews() (rows, cols []int, vals []float64, err error) {
	if rows, err = m.irow.Host(); err != nil {
		return nil, nil, nil, err
	}
	if cols, err = m.jcol.Host(); err != nil {
		return nil, nil, nil, err
	}
	if vals, err = m.vals.Host(); err != nil {
		return nil, nil, nil, err
	}

	return rows, cols, vals, nil
}

// syncedHostViews refreshes the mirror first. Diagnostics use it.
func (m *Triplet) syncedHostViews() (rows, cols []int, vals []float64, err error) {
	if err = m.CopyFromDevice(); err != nil {
		return nil, nil, nil, err
	}

	return m.hostViews()
}

// AllocClone returns a new matrix with the same shape, nnz and options.
// Its triplets are zero, not copied.
func (m *Triplet) AllocClone() (Matrix, error) {
	c, err := m.allocClone()
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (m *Triplet) allocClone() (*Triplet, error) {
	if m.released {
		return nil, sparseErrorf(opAllocClone, memspace.ErrReleased)
	}

	return newTriplet(opAllocClone, m.nrows, m.ncols, m.nnz, m.cfg)
}

// Copy returns a deep copy: triplets, values, host mirrors and their
// freshness state. The Row-Start Index is rebuilt lazily by the copy.
func (m *Triplet) Copy() (Matrix, error) {
	c, err := m.copyTriplet()
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (m *Triplet) copyTriplet() (*Triplet, error) {
	c := &Triplet{nrows: m.nrows, ncols: m.ncols, nnz: m.nnz, cfg: m.cfg}
	var err error
	if c.irow, err = m.irow.Clone(); err != nil {
		return nil, sparseErrorf(opCopy, err)
	}
	if c.jcol, err = m.jcol.Clone(); err != nil {
		c.irow.Release()

		return nil, sparseErrorf(opCopy, err)
	}
	if c.vals, err = m.vals.Clone(); err != nil {
		c.irow.Release()
		c.jcol.Release()

		return nil, sparseErrorf(opCopy, err)
	}

	return c, nil
}

// Release returns every buffer, including the cached Row-Start Index, to the
// memory manager. The matrix must not be used afterwards; calling Release
// twice is safe.
func (m *Triplet) Release() {
	if m.released {
		return
	}
	m.invalidateRowStarts()
	m.irow.Release()
	m.jcol.Release()
	m.vals.Release()
	m.released = true
	m.cfg.logger.Debug("sparse: matrix released",
		"rows", m.nrows, "cols", m.ncols, "nnz", m.nnz, "space", m.vals.Space())
}
