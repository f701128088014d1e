// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All kernels return these sentinels (wrapped with the operation tag at the
// detection site) and tests check them via errors.Is. Nothing in this package
// panics on a caller-triggered condition.

package sparse

import (
	"errors"
	"fmt"
)

// ERROR FAMILIES:
//   - contract violations (caller passed something the kernel cannot accept):
//     every one of them also matches ErrContractViolation;
//   - ErrUnsupported for operations this representation does not provide;
//   - ErrTypeMismatch for failed capability queries;
//   - allocation / stale-buffer failures come from package memspace unchanged.

var (
	// ErrContractViolation is the root of every precondition failure.
	ErrContractViolation = errors.New("sparse: contract violation")

	// ErrInvalidShape is returned for negative rows, cols or nnz, or a
	// non-square symmetric matrix.
	ErrInvalidShape = fmt.Errorf("%w: invalid shape", ErrContractViolation)

	// ErrDimensionMismatch indicates incompatible operand lengths or shapes.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrContractViolation)

	// ErrOutOfRange indicates a triplet index or a destination block that
	// falls outside its matrix.
	ErrOutOfRange = fmt.Errorf("%w: index out of range", ErrContractViolation)

	// ErrUnsorted indicates triplets not sorted by (row, col) where order is required.
	ErrUnsorted = fmt.Errorf("%w: triplets not sorted", ErrContractViolation)

	// ErrLowerTriangle indicates a write that would land below the diagonal of
	// an upper-triangle destination, or a lower entry in a symmetric matrix.
	ErrLowerTriangle = fmt.Errorf("%w: entry outside the upper triangle", ErrContractViolation)

	// ErrNotSquare indicates that a square destination was required.
	ErrNotSquare = fmt.Errorf("%w: destination is not square", ErrContractViolation)

	// ErrZeroWeight indicates a zero diagonal weight on a column that is used.
	ErrZeroWeight = fmt.Errorf("%w: zero weight", ErrContractViolation)

	// ErrNilArgument indicates a nil matrix, vector or destination.
	ErrNilArgument = fmt.Errorf("%w: nil argument", ErrContractViolation)

	// ErrUnsupported marks operations deliberately absent from the triplet
	// representation (matrix-matrix products, general additions, row copies).
	ErrUnsupported = errors.New("sparse: operation not supported by this representation")

	// ErrTypeMismatch is returned by capability queries (AsTriplet,
	// AsSymTriplet, vector access) when the value is not of the needed kind.
	ErrTypeMismatch = errors.New("sparse: type mismatch")
)

// ---------- operation tags (used in error wrappers) ----------

const (
	opNew            = "NewTriplet"
	opNewSym         = "NewSymTriplet"
	opEditStructure  = "EditStructure"
	opEditValues     = "EditValues"
	opRowStarts      = "RowStarts"
	opFill           = "FillConstant"
	opMulVec         = "MulVec"
	opMulTransVec    = "MulTransVec"
	opMaxAbs         = "MaxAbs"
	opIsFinite       = "IsFinite"
	opEmbed          = "AddToSymDenseUpper"
	opEmbedTrans     = "TransAddToSymDenseUpper"
	opSelfGram       = "AddMDinvMtransToDiagBlock"
	opCrossGram      = "AddMDinvNtransToUpperBlock"
	opSubDiag        = "AddSubDiagonalTo"
	opCopy           = "Copy"
	opAllocClone     = "AllocClone"
	opPrint          = "Print"
	opSync           = "CopyToDevice"
	opSyncBack       = "CopyFromDevice"
	opOrdered        = "CheckIndexesAreOrdered"
	opNonzerosPerRow = "NonzerosPerRow"
	opNonzerosPerCol = "NonzerosPerCol"
)

// sparseErrorf wraps err with the operation tag.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
