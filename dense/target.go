// SPDX-License-Identifier: MIT

// Package dense - Target capability and gonum adapters.
//
// Purpose:
//   - Replace "cast the abstract matrix to the concrete dense class" with an
//     explicit capability: anything exposing Dims and raw row-major storage.
//   - AsTarget performs the checked query and returns ErrTypeMismatch instead
//     of failing at the cast.

package dense

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"
)

// Target is the capability sparse kernels write through: the shape and the
// row-major backing buffer (element (i,j) lives at data[i*stride+j]).
type Target interface {
	Dims() (r, c int)
	RawRowMajor() (data []float64, stride int)
}

// gonumDense adapts *mat.Dense.
type gonumDense struct{ m *mat.Dense }

func (g gonumDense) Dims() (r, c int) { return g.m.Dims() }

func (g gonumDense) RawRowMajor() ([]float64, int) {
	raw := g.m.RawMatrix()

	return raw.Data, raw.Stride
}

// gonumSym adapts an upper-stored *mat.SymDense. Only the upper triangle of
// its buffer is ever read by gonum, which matches KKT assembly.
type gonumSym struct{ m *mat.SymDense }

func (g gonumSym) Dims() (r, c int) {
	n := g.m.SymmetricDim()

	return n, n
}

func (g gonumSym) RawRowMajor() ([]float64, int) {
	raw := g.m.RawSymmetric()

	return raw.Data, raw.Stride
}

// Gonum wraps a gonum dense matrix as a Target sharing its storage.
func Gonum(m *mat.Dense) Target { return gonumDense{m: m} }

// GonumSym wraps an upper-stored gonum symmetric matrix as a Target.
// Returns ErrTypeMismatch for lower-stored matrices.
func GonumSym(m *mat.SymDense) (Target, error) {
	if m.RawSymmetric().Uplo != blas.Upper {
		return nil, fmt.Errorf("GonumSym: lower storage: %w", ErrTypeMismatch)
	}

	return gonumSym{m: m}, nil
}

// ToGonum returns a *mat.Dense view sharing m's storage.
func ToGonum(m *Matrix) *mat.Dense {
	return mat.NewDense(m.r, m.c, m.data)
}

// AsTarget is the checked capability query for polymorphic call sites.
// It accepts any Target, *mat.Dense and upper-stored *mat.SymDense.
func AsTarget(v any) (Target, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("AsTarget: %w", ErrNilMatrix)
	case *Matrix:
		if x == nil {
			return nil, fmt.Errorf("AsTarget: %w", ErrNilMatrix)
		}
		return x, nil
	case *mat.Dense:
		if x == nil {
			return nil, fmt.Errorf("AsTarget: %w", ErrNilMatrix)
		}
		return Gonum(x), nil
	case *mat.SymDense:
		if x == nil {
			return nil, fmt.Errorf("AsTarget: %w", ErrNilMatrix)
		}
		return GonumSym(x)
	case Target:
		return x, nil
	}

	return nil, fmt.Errorf("AsTarget(%T): %w", v, ErrTypeMismatch)
}
