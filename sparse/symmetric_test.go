// SPDX-License-Identifier: MIT

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/sparsekkt/memspace"
	"github.com/katalvlaran/sparsekkt/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestSymMulVec_EndToEnd(t *testing.T) {
	for _, space := range spaces {
		t.Run(string(space), func(t *testing.T) {
			s := mustSym(t, 3, symExample, testOptions(t, space)...)
			y := make([]float64, 3)
			require.NoError(t, s.MulVec(0, y, 1, []float64{1, 1, 1}))
			require.Equal(t, []float64{5, 4, 2}, y)

			yt := make([]float64, 3)
			require.NoError(t, s.MulTransVec(0, yt, 1, []float64{1, 1, 1}))
			require.Equal(t, y, yt)
		})
	}
}

func TestSymMulVec_MatchesSymv(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const n = 13
	entries := randomEntries(rng, n, n, 0.35, true)
	full := symDenseOf(n, entries)
	s := mustSym(t, n, entries, testOptions(t, memspace.Device)...)

	const alpha, beta = -1.25, 0.5
	x := randomVec(rng, n)
	y0 := randomVec(rng, n)

	y := append([]float64(nil), y0...)
	require.NoError(t, s.MulVec(beta, y, alpha, x))

	want := append([]float64(nil), y0...)
	raw := full.RawSymmetric()
	blas64.Symv(alpha,
		blas64.Symmetric{Uplo: blas.Upper, N: n, Stride: raw.Stride, Data: raw.Data},
		blas64.Vector{N: n, Inc: 1, Data: x},
		beta,
		blas64.Vector{N: n, Inc: 1, Data: want})
	require.True(t, floats.EqualApprox(want, y, tol), "want %v got %v", want, y)

	// the gonum entry point agrees
	yv := mat.NewVecDense(n, append([]float64(nil), y0...))
	require.NoError(t, s.MulVecTo(beta, yv, alpha, mat.NewVecDense(n, x)))
	require.True(t, floats.EqualApprox(want, yv.RawVector().Data, tol))
}

func TestSymTriplet_RejectsLowerEntries(t *testing.T) {
	_, err := sparse.NewSymTripletFromEntries(3, []sparse.Entry{{0, 1, 1}, {2, 1, 1}})
	require.ErrorIs(t, err, sparse.ErrLowerTriangle)
	require.ErrorIs(t, err, sparse.ErrContractViolation)

	_, err = sparse.NewSymTriplet(-2, 0)
	require.ErrorIs(t, err, sparse.ErrInvalidShape)

	s, err := sparse.NewSymTriplet(3, 2, testOptions(t, memspace.Host)...)
	require.NoError(t, err)
	defer s.Release()
	r, c := s.Dims()
	require.Equal(t, r, c)

	err = s.EditStructure(func(rows, cols []int) {
		copy(rows, []int{0, 2})
		copy(cols, []int{1, 1})
	})
	require.ErrorIs(t, err, sparse.ErrLowerTriangle)

	require.NoError(t, s.EditStructure(func(rows, cols []int) {
		copy(rows, []int{0, 1})
		copy(cols, []int{1, 2})
	}))
}

func TestSymEditStructure_RejectedLowerEntryNotStored(t *testing.T) {
	for _, space := range spaces {
		t.Run(string(space), func(t *testing.T) {
			s := mustSym(t, 3, symExample, testOptions(t, space)...)

			err := s.EditStructure(func(rows, cols []int) { rows[3], cols[3] = 2, 1 })
			require.ErrorIs(t, err, sparse.ErrLowerTriangle)

			got, err := s.Entries()
			require.NoError(t, err)
			require.Equal(t, symExample, got)

			require.NoError(t, s.CopyToDevice())
			y := make([]float64, 3)
			require.NoError(t, s.MulVec(0, y, 1, []float64{1, 1, 1}))
			require.Equal(t, []float64{5, 4, 2}, y)

			w := mustSquare(t, 3)
			require.NoError(t, s.AddToSymDenseUpper(0, 0, 1, w))
			require.Equal(t, "[4, 1, 0]\n[0, 3, 0]\n[0, 0, 2]\n", w.String())
		})
	}
}

func TestSymEmbedding_DeepChecksStoredTriangle(t *testing.T) {
	s := mustSym(t, 3, symExample, testOptions(t, memspace.Device)...)
	sparse.ForceStructure(s.Triplet, []int{0, 0, 1, 2}, []int{0, 1, 1, 1})

	// both blocks sit above the diagonal, so only the stored-triangle check fires
	wt := mustSquare(t, 6)
	require.ErrorIs(t, s.TransAddToSymDenseUpper(0, 3, 1, wt), sparse.ErrLowerTriangle)
	require.ErrorIs(t, s.AddToSymDenseUpper(0, 3, 1, wt), sparse.ErrLowerTriangle)
	require.Equal(t, mustSquare(t, 6).String(), wt.String())
}

func TestSymEmbedding(t *testing.T) {
	for _, space := range spaces {
		t.Run(string(space), func(t *testing.T) {
			s := mustSym(t, 3, symExample, testOptions(t, space)...)

			w := mustSquare(t, 3)
			require.NoError(t, s.AddToSymDenseUpper(0, 0, 1, w))
			require.Equal(t, "[4, 1, 0]\n[0, 3, 0]\n[0, 0, 2]\n", w.String())

			// mirrored placement, no duplication of the off-diagonal value
			wt := mustSquare(t, 6)
			require.NoError(t, s.TransAddToSymDenseUpper(0, 3, 1, wt))
			v, err := wt.At(1, 3)
			require.NoError(t, err)
			require.Equal(t, 1.0, v)
			v, err = wt.At(0, 4)
			require.NoError(t, err)
			require.Zero(t, v)
			v, err = wt.At(2, 5)
			require.NoError(t, err)
			require.Equal(t, 2.0, v)

			require.ErrorIs(t, s.TransAddToSymDenseUpper(0, 0, 1, mustSquare(t, 3)), sparse.ErrLowerTriangle)
		})
	}
}

func TestAddSubDiagonalTo(t *testing.T) {
	entries := []sparse.Entry{{0, 0, 4}, {0, 1, 1}, {1, 1, 3}, {2, 2, 2}, {3, 3, 5}}
	s := mustSym(t, 4, entries, testOptions(t, memspace.Device)...)

	dest := make([]float64, 5)
	require.NoError(t, s.AddSubDiagonalTo(1, 2, dest, 2, 2))
	require.Equal(t, []float64{0, 0, 6, 4, 0}, dest)

	// count < 0 takes as many as fit
	all := make([]float64, 5)
	require.NoError(t, s.AddSubDiagonalTo(1, 2, all, 2, -1))
	require.Equal(t, []float64{0, 0, 6, 4, 10}, all)

	require.ErrorIs(t, s.AddSubDiagonalTo(3, 1, dest, 0, 2), sparse.ErrOutOfRange)
	require.ErrorIs(t, s.AddSubDiagonalTo(0, 1, dest, 4, 2), sparse.ErrOutOfRange)
	require.ErrorIs(t, s.AddSubDiagonalTo(-1, 1, dest, 0, 1), sparse.ErrOutOfRange)
}

func TestSymGramUnsupported(t *testing.T) {
	s := mustSym(t, 3, symExample, testOptions(t, memspace.Host)...)
	d := []float64{1, 1, 1}
	require.ErrorIs(t, s.AddMDinvMtransToDiagBlock(0, 1, d, mustSquare(t, 3)), sparse.ErrUnsupported)
	require.ErrorIs(t, s.AddMDinvNtransToUpperBlock(0, 0, 1, d, s, mustSquare(t, 3)), sparse.ErrUnsupported)

	// the stored triangle is still reachable as a general matrix
	require.NoError(t, s.Triplet.AddMDinvMtransToDiagBlock(0, 1, d, mustSquare(t, 3)))
}

func TestSymCopyKeepsType(t *testing.T) {
	s := mustSym(t, 3, symExample, testOptions(t, memspace.Device)...)

	cp, err := s.Copy()
	require.NoError(t, err)
	defer cp.Release()
	cs, err := sparse.AsSymTriplet(cp)
	require.NoError(t, err)
	want, err := s.Entries()
	require.NoError(t, err)
	got, err := cs.Entries()
	require.NoError(t, err)
	require.Equal(t, want, got)

	y := make([]float64, 3)
	require.NoError(t, cp.MulVec(0, y, 1, []float64{1, 1, 1}))
	require.Equal(t, []float64{5, 4, 2}, y)

	cl, err := s.AllocClone()
	require.NoError(t, err)
	defer cl.Release()
	_, err = sparse.AsSymTriplet(cl)
	require.NoError(t, err)
}
