// Package dense provides the dense destinations that receive assembled KKT
// blocks.
//
// What & Why:
//
//	The sparse kernels never own a dense matrix; they add into a block of one
//	owned by the caller. This package defines the Target capability those
//	kernels write through (dimensions plus raw row-major storage), a small
//	row-major Matrix implementing it, and an adapter over gonum's *mat.Dense so
//	blocks can be handed straight to gonum factorizations.
//
// Only the upper triangle of a symmetric destination is meaningful while a
// KKT block is being assembled; SymmetrizeUpper mirrors it into the lower
// triangle once assembly is done.
//
// Complexity:
//
//	Dims, RawRowMajor, At and Set run in O(1).
//	Clone, Zero and SymmetrizeUpper run in O(rows*cols).
package dense
