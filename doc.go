// Package sparsekkt is a host/device sparse-triplet engine for assembling the
// KKT systems of an interior-point nonlinear solver.
//
// What is inside?
//
//	A small stack of packages, leaf to root:
//		• memspace: memory spaces, a capacity-accounting Manager and the
//		  dual host/device Buffer with explicit synchronization
//		• parallel: a persistent worker pool with parallel-for loops,
//		  reductions and atomic float64 accumulation
//		• dense:    the row-major destination of assembled KKT blocks, plus
//		  adapters for gonum *mat.Dense and upper *mat.SymDense
//		• sparse:   general and symmetric (upper-stored) triplet matrices,
//		  the Row-Start Index, mat-vec, embedding and weighted Gram kernels
//		• problem:  the NLP callback contract, bound conventions,
//		  exactly-once constraint evaluation, Jacobian/Hessian population
//		• kkt:      augmented and normal-equation KKT assembly
//
// Data flow per iteration:
//
//	problem callbacks ──► sparse.Triplet / SymTriplet (values only, structure once)
//	                  ──► kkt.Assembler (sparse kernels into a dense upper triangle)
//	                  ──► external dense factorization
//
// Memory spaces:
//
//	Matrices live in memspace.Host or memspace.Device (an emulated
//	accelerator with a host mirror). Host-side edits are published with
//	CopyToDevice; kernels reading outdated data fail with memspace.ErrStale
//	rather than returning wrong numbers. The default space can be set with
//	SPARSEKKT_MEMSPACE and the default pool size with SPARSEKKT_WORKERS.
//
// Not provided on purpose: general sparse arithmetic (matrix products, sums of
// arbitrary sparse matrices). Those methods exist on the Matrix interface and
// return sparse.ErrUnsupported.
//
// See examples/ for a runnable assembly of Hock–Schittkowski problem 71.
package sparsekkt
