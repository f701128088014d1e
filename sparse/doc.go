// SPDX-License-Identifier: MIT

// Package sparse implements the triplet (COO) sparse matrices used to build
// KKT systems inside an interior-point solver, together with the
// structure-aware kernels that fold them into dense blocks.
//
// The package provides:
//
//   - Triplet: a general rectangular matrix stored as parallel row, column and
//     value buffers in a chosen memory space (see package memspace).
//   - SymTriplet: a symmetric matrix storing only entries with row <= col.
//   - RowStarts: the cached per-row ranges used for row-wise traversal.
//   - Kernels: y = beta*y + alpha*A*x (and the transpose), max-abs and
//     finiteness reductions, embedding into the upper triangle of a dense
//     block, and the weighted Gram products alpha*M*diag(D)^-1*N^T computed by
//     a sorted merge-join over row pairs.
//
// Ordering: the Row-Start Index and the Gram kernels need triplets sorted by
// (row, col). Unsorted rows are always rejected with ErrUnsorted; column order
// within a row is verified only with WithDeepChecks.
//
// Memory spaces: kernels run on the primary buffers; populating, printing and
// integrity checks run on the host mirror. CopyToDevice and CopyFromDevice are
// the only reconciliation points, and reading a stale side is an error.
//
// Concurrency: kernels are synchronous data-parallel loops on a parallel.Pool.
// A matrix has no internal locking; do not issue two calls on the same matrix
// concurrently, and build the Row-Start Index from a single goroutine.
//
// General sparse arithmetic (matrix-matrix products, adding arbitrary
// matrices, row extraction) is deliberately unsupported and returns
// ErrUnsupported.
package sparse
