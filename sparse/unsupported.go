// SPDX-License-Identifier: MIT

package sparse

import (
	"github.com/katalvlaran/sparsekkt/dense"
)

// The triplet representation serves KKT assembly only. General sparse
// arithmetic below is not provided; each call returns ErrUnsupported and
// leaves every operand untouched.

// TimesMat would compute W := beta*W + alpha*A*X. Unsupported.
func (m *Triplet) TimesMat(beta float64, w dense.Target, alpha float64, x dense.Target) error {
	return sparseErrorf("TimesMat", ErrUnsupported)
}

// TransTimesMat would compute W := beta*W + alpha*A^T*X. Unsupported.
func (m *Triplet) TransTimesMat(beta float64, w dense.Target, alpha float64, x dense.Target) error {
	return sparseErrorf("TransTimesMat", ErrUnsupported)
}

// TimesMatTrans would compute W := beta*W + alpha*A*X^T. Unsupported.
func (m *Triplet) TimesMatTrans(beta float64, w dense.Target, alpha float64, x dense.Target) error {
	return sparseErrorf("TimesMatTrans", ErrUnsupported)
}

// AddDiagonal would add alpha*d to the diagonal. Unsupported: the pattern may
// not contain the diagonal.
func (m *Triplet) AddDiagonal(alpha float64, d []float64) error {
	return sparseErrorf("AddDiagonal", ErrUnsupported)
}

// AddDiagonalVec would add v to every diagonal entry. Unsupported.
func (m *Triplet) AddDiagonalVec(v float64) error {
	return sparseErrorf("AddDiagonalVec", ErrUnsupported)
}

// AddSubDiagonal would add alpha*d to a diagonal segment. Unsupported.
func (m *Triplet) AddSubDiagonal(start int, alpha float64, d []float64) error {
	return sparseErrorf("AddSubDiagonal", ErrUnsupported)
}

// AddMatrix would compute A += alpha*X for an arbitrary pattern. Unsupported.
func (m *Triplet) AddMatrix(alpha float64, x Matrix) error {
	return sparseErrorf("AddMatrix", ErrUnsupported)
}

// CopyRowsFrom would gather arbitrary rows of src. Unsupported.
func (m *Triplet) CopyRowsFrom(src Matrix, rows []int) error {
	return sparseErrorf("CopyRowsFrom", ErrUnsupported)
}

// CopyFrom would copy an arbitrary-pattern matrix. Unsupported; use Copy.
func (m *Triplet) CopyFrom(src Matrix) error {
	return sparseErrorf("CopyFrom", ErrUnsupported)
}
