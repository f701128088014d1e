// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers.
//
// Purpose:
//   - Build small deterministic fixtures in both memory spaces.
//   - Provide gonum reference computations for kernel results.

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/sparsekkt/dense"
	"github.com/katalvlaran/sparsekkt/memspace"
	"github.com/katalvlaran/sparsekkt/parallel"
	"github.com/katalvlaran/sparsekkt/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-12

// spaces lists the memory spaces every kernel test runs in.
var spaces = []memspace.Space{memspace.Host, memspace.Device}

// gramA is a 3×4 matrix with 5 nonzeros, sorted by (row, col).
var gramA = []sparse.Entry{
	{Row: 0, Col: 0, Value: 1},
	{Row: 0, Col: 2, Value: 2},
	{Row: 1, Col: 1, Value: 3},
	{Row: 1, Col: 2, Value: -1},
	{Row: 2, Col: 0, Value: 4},
}

// gramD are diagonal weights for gramA's column space.
var gramD = []float64{2, 0.5, 4, 1}

// symExample is the upper triangle of [[4 1 0] [1 3 0] [0 0 2]].
var symExample = []sparse.Entry{
	{Row: 0, Col: 0, Value: 4},
	{Row: 0, Col: 1, Value: 1},
	{Row: 1, Col: 1, Value: 3},
	{Row: 2, Col: 2, Value: 2},
}

// testOptions returns options with a private manager, a pool that splits even
// tiny ranges, and deep checks enabled.
func testOptions(t *testing.T, space memspace.Space, extra ...sparse.Option) []sparse.Option {
	t.Helper()
	p := parallel.New(4, parallel.WithGrain(1))
	t.Cleanup(p.Close)

	opts := []sparse.Option{
		sparse.WithMemorySpace(space),
		sparse.WithManager(memspace.NewManager()),
		sparse.WithPool(p),
		sparse.WithDeepChecks(),
	}

	return append(opts, extra...)
}

// mustTriplet builds a general matrix from entries or fails the test.
func mustTriplet(t *testing.T, rows, cols int, entries []sparse.Entry, opts ...sparse.Option) *sparse.Triplet {
	t.Helper()
	m, err := sparse.NewTripletFromEntries(rows, cols, entries, opts...)
	require.NoError(t, err)
	t.Cleanup(m.Release)

	return m
}

// mustSym builds a symmetric matrix from upper-triangle entries or fails the test.
func mustSym(t *testing.T, n int, entries []sparse.Entry, opts ...sparse.Option) *sparse.SymTriplet {
	t.Helper()
	m, err := sparse.NewSymTripletFromEntries(n, entries, opts...)
	require.NoError(t, err)
	t.Cleanup(m.Release)

	return m
}

// mustSquare allocates an n×n zero destination.
func mustSquare(t *testing.T, n int) *dense.Matrix {
	t.Helper()
	w, err := dense.NewSquare(n)
	require.NoError(t, err)

	return w
}

// denseOf accumulates entries into a rows×cols gonum matrix.
func denseOf(rows, cols int, entries []sparse.Entry) *mat.Dense {
	d := mat.NewDense(rows, cols, nil)
	for _, e := range entries {
		d.Set(e.Row, e.Col, d.At(e.Row, e.Col)+e.Value)
	}

	return d
}

// symDenseOf expands upper-triangle entries into a full symmetric matrix.
func symDenseOf(n int, entries []sparse.Entry) *mat.SymDense {
	s := mat.NewSymDense(n, nil)
	for _, e := range entries {
		s.SetSym(e.Row, e.Col, s.At(e.Row, e.Col)+e.Value)
	}

	return s
}

// randomEntries returns a sorted random pattern with the given density.
func randomEntries(rng *rand.Rand, rows, cols int, density float64, upper bool) []sparse.Entry {
	var out []sparse.Entry
	for i := 0; i < rows; i++ {
		j0 := 0
		if upper {
			j0 = i
		}
		for j := j0; j < cols; j++ {
			if rng.Float64() < density {
				out = append(out, sparse.Entry{Row: i, Col: j, Value: rng.NormFloat64()})
			}
		}
	}

	return out
}

func randomVec(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64()
	}

	return v
}

// requireUpperBlock checks that dst equals want inside the block at (r0, c0)
// and is zero everywhere else.
func requireUpperBlock(t *testing.T, want mat.Matrix, dst dense.Target, r0, c0 int) {
	t.Helper()
	wr, wc := want.Dims()
	n, _ := dst.Dims()
	data, stride := dst.RawRowMajor()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			got := data[i*stride+j]
			bi, bj := i-r0, j-c0
			if bi >= 0 && bi < wr && bj >= 0 && bj < wc && i <= j {
				require.InDeltaf(t, want.At(bi, bj), got, tol, "cell (%d,%d)", i, j)
				continue
			}
			require.Zerof(t, got, "cell (%d,%d) must stay untouched", i, j)
		}
	}
}
