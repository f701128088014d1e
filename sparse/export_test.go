// SPDX-License-Identifier: MIT

package sparse

// Test bridge for white-box checks of unexported helpers.

var (
	ExportedMergeDot           = mergeDot
	ExportedBlockAboveDiagonal = blockAboveDiagonal
)

// PrimaryStarts returns the boundaries as stored in the primary space.
func (rs *RowStarts) PrimaryStarts() ([]int, error) { return rs.buf.Primary() }

// ForceStructure overwrites the indices on both sides without validation,
// standing in for storage corrupted outside the public API.
func ForceStructure(m *Triplet, rows, cols []int) {
	r, _ := m.irow.HostOverwrite()
	copy(r, rows)
	c, _ := m.jcol.HostOverwrite()
	copy(c, cols)
	_ = m.irow.CopyToPrimary()
	_ = m.jcol.CopyToPrimary()
	m.invalidateRowStarts()
}
