// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"

	"github.com/katalvlaran/sparsekkt/memspace"
)

// RowStarts maps each row i of a row-sorted triplet matrix to the half-open
// range [start[i], start[i+1]) of triplet positions holding that row.
// It lives in the matrix's memory space; the host copy serves Range.
type RowStarts struct {
	nrows int
	buf   *memspace.Buffer[int]
	host  []int
}

// NumRows returns the number of rows indexed.
func (rs *RowStarts) NumRows() int { return rs.nrows }

// Range returns the triplet positions [start, end) of row i.
// It panics if i is outside [0, NumRows()).
func (rs *RowStarts) Range(i int) (start, end int) {
	return rs.host[i], rs.host[i+1]
}

// Starts returns a copy of the nrows+1 boundaries.
func (rs *RowStarts) Starts() []int {
	out := make([]int, len(rs.host))
	copy(out, rs.host)

	return out
}

func (rs *RowStarts) release() { rs.buf.Release() }

// RowStarts returns the cached Row-Start Index, building it on first use with
// a single linear scan of the host-side triplets. The host mirror is
// refreshed first when it is stale.
//
// Building is not safe for concurrent use; build once from a single
// goroutine before handing the matrix to concurrent readers.
//
// Errors:
//   - ErrUnsorted when rows are not in non-decreasing order, or (with deep
//     checks) columns decrease inside a row.
//   - memspace errors from synchronization or allocation.
func (m *Triplet) RowStarts() (*RowStarts, error) {
	if m.starts != nil {
		return m.starts, nil
	}
	rows, cols, _, err := m.syncedHostViews()
	if err != nil {
		return nil, sparseErrorf(opRowStarts, err)
	}

	buf, err := memspace.Allocate[int](m.cfg.mgr, m.cfg.space, m.nrows+1)
	if err != nil {
		return nil, sparseErrorf(opRowStarts, err)
	}
	starts, _ := buf.HostOverwrite()

	it := 0
	for i := 0; i < m.nrows; i++ {
		first := it
		for it < m.nnz && rows[it] == i {
			if m.cfg.deepChecks && it > first && cols[it] < cols[it-1] {
				buf.Release()

				return nil, sparseErrorf(opRowStarts,
					fmt.Errorf("row %d: column %d after %d: %w", i, cols[it], cols[it-1], ErrUnsorted))
			}
			it++
		}
		starts[i+1] = it
	}
	if it != m.nnz {
		buf.Release()

		return nil, sparseErrorf(opRowStarts,
			fmt.Errorf("triplet %d (row %d) out of row order: %w", it, rows[it], ErrUnsorted))
	}
	if err = buf.CopyToPrimary(); err != nil {
		buf.Release()

		return nil, sparseErrorf(opRowStarts, err)
	}

	m.starts = &RowStarts{nrows: m.nrows, buf: buf, host: starts}
	m.cfg.logger.Debug("sparse: row-start index built", "rows", m.nrows, "nnz", m.nnz)

	return m.starts, nil
}

// invalidateRowStarts drops the cached index after a structural change.
func (m *Triplet) invalidateRowStarts() {
	if m.starts == nil {
		return
	}
	m.starts.release()
	m.starts = nil
	m.cfg.logger.Debug("sparse: row-start index invalidated", "rows", m.nrows)
}

// rowStartsPrimary returns the primary-side boundaries for kernels.
func (m *Triplet) rowStartsPrimary() ([]int, error) {
	rs, err := m.RowStarts()
	if err != nil {
		return nil, err
	}
	starts, err := rs.buf.Primary()
	if err != nil {
		return nil, sparseErrorf(opRowStarts, err)
	}

	return starts, nil
}
