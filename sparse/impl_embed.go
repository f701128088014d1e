// SPDX-License-Identifier: MIT

// Package sparse - embedding into the upper triangle of a dense KKT block.
//
// Contract (both orientations):
//   - destination is a square dense.Target (ErrNotSquare otherwise);
//   - the mapped block lies inside it (ErrOutOfRange);
//   - every mapped cell (i, j) satisfies i <= j (ErrLowerTriangle).
//
// All checks run before the first write, so a rejected call leaves the
// destination untouched. The per-entry triangle scan is skipped when the
// whole block sits on or above the diagonal.

package sparse

import (
	"fmt"

	"github.com/katalvlaran/sparsekkt/dense"
	"github.com/katalvlaran/sparsekkt/parallel"
)

// AddToSymDenseUpper adds alpha*v into w[r+rowOff][c+colOff] for every stored (r, c, v).
func (m *Triplet) AddToSymDenseUpper(rowOff, colOff int, alpha float64, w dense.Target) error {
	return m.embed(opEmbed, false, rowOff, colOff, alpha, w)
}

// TransAddToSymDenseUpper adds alpha*v into w[c+rowOff][r+colOff] for every
// stored (r, c, v), i.e. embeds A^T.
func (m *Triplet) TransAddToSymDenseUpper(rowOff, colOff int, alpha float64, w dense.Target) error {
	return m.embed(opEmbedTrans, true, rowOff, colOff, alpha, w)
}

func (m *Triplet) embed(tag string, trans bool, rowOff, colOff int, alpha float64, w dense.Target) error {
	n, err := validateSquareTarget(w)
	if err != nil {
		return sparseErrorf(tag, err)
	}
	rows, cols, vals, err := m.primaries()
	if err != nil {
		return sparseErrorf(tag, err)
	}

	br, bc := m.nrows, m.ncols
	if trans {
		rows, cols = cols, rows
		br, bc = bc, br
	}
	if err = validateBlock(n, rowOff, colOff, br, bc); err != nil {
		return sparseErrorf(tag, err)
	}
	if !blockAboveDiagonal(rowOff, colOff, br, bc) {
		err = m.cfg.pool.ParallelForErr(len(vals), func(start, end int) error {
			for k := start; k < end; k++ {
				if i, j := rows[k]+rowOff, cols[k]+colOff; i > j {
					return fmt.Errorf("triplet %d maps to (%d,%d): %w", k, i, j, ErrLowerTriangle)
				}
			}

			return nil
		})
		if err != nil {
			m.cfg.logger.Warn("sparse: embedding rejected", "op", tag, "rowOff", rowOff, "colOff", colOff, "err", err)

			return sparseErrorf(tag, err)
		}
	}

	data, stride := w.RawRowMajor()
	m.cfg.pool.ParallelFor(len(vals), func(start, end int) {
		for k := start; k < end; k++ {
			parallel.AtomicAdd(&data[(rows[k]+rowOff)*stride+cols[k]+colOff], alpha*vals[k])
		}
	})

	return nil
}
