// SPDX-License-Identifier: MIT

package sparse

import (
	"io"

	"github.com/katalvlaran/sparsekkt/dense"
	"gonum.org/v1/gonum/mat"
)

// Entry is one stored nonzero: (Row, Col, Value), 0-based.
type Entry struct {
	Row, Col int
	Value    float64
}

// Matrix is the solver-facing contract shared by Triplet and SymTriplet.
// Operations a representation does not provide return ErrUnsupported; code
// that needs the concrete type asks for it with AsTriplet or AsSymTriplet.
type Matrix interface {
	Dims() (r, c int)
	NNZ() int

	FillConstant(c float64) error
	SetToZero() error

	MulVec(beta float64, y []float64, alpha float64, x []float64) error
	MulTransVec(beta float64, y []float64, alpha float64, x []float64) error
	MulVecTo(beta float64, y *mat.VecDense, alpha float64, x mat.Vector) error
	MulTransVecTo(beta float64, y *mat.VecDense, alpha float64, x mat.Vector) error

	MaxAbs() (float64, error)
	IsFinite() (bool, error)

	AddToSymDenseUpper(rowOff, colOff int, alpha float64, w dense.Target) error
	TransAddToSymDenseUpper(rowOff, colOff int, alpha float64, w dense.Target) error
	AddMDinvMtransToDiagBlock(offset int, alpha float64, d []float64, w dense.Target) error
	AddMDinvNtransToUpperBlock(rowOff, colOff int, alpha float64, d []float64, other Matrix, w dense.Target) error

	TimesMat(beta float64, w dense.Target, alpha float64, x dense.Target) error
	TransTimesMat(beta float64, w dense.Target, alpha float64, x dense.Target) error
	TimesMatTrans(beta float64, w dense.Target, alpha float64, x dense.Target) error
	AddDiagonal(alpha float64, d []float64) error
	AddDiagonalVec(v float64) error
	AddSubDiagonal(start int, alpha float64, d []float64) error
	AddMatrix(alpha float64, x Matrix) error
	CopyRowsFrom(src Matrix, rows []int) error
	CopyFrom(src Matrix) error

	AllocClone() (Matrix, error)
	Copy() (Matrix, error)

	CopyToDevice() error
	CopyFromDevice() error
	Print(w io.Writer, msg string, maxElems int) error
	Release()
}

// Compile-time assertions for interface conformance.
var (
	_ Matrix = (*Triplet)(nil)
	_ Matrix = (*SymTriplet)(nil)
)

// AsTriplet returns m as a general triplet matrix.
// A SymTriplet is not a general matrix (its lower triangle is implicit) and
// yields ErrTypeMismatch, as does any foreign implementation.
func AsTriplet(m Matrix) (*Triplet, error) {
	switch v := m.(type) {
	case *Triplet:
		if v == nil {
			return nil, ErrNilArgument
		}

		return v, nil
	case nil:
		return nil, ErrNilArgument
	default:
		return nil, ErrTypeMismatch
	}
}

// AsSymTriplet returns m as a symmetric upper-triangle triplet matrix.
func AsSymTriplet(m Matrix) (*SymTriplet, error) {
	switch v := m.(type) {
	case *SymTriplet:
		if v == nil {
			return nil, ErrNilArgument
		}

		return v, nil
	case nil:
		return nil, ErrNilArgument
	default:
		return nil, ErrTypeMismatch
	}
}

// outputVector returns the contiguous storage of y for in-place accumulation.
// Strided views cannot be written through a flat slice and yield ErrTypeMismatch.
func outputVector(y *mat.VecDense) ([]float64, error) {
	if y == nil {
		return nil, ErrNilArgument
	}
	raw := y.RawVector()
	if raw.N == 0 {
		return nil, nil
	}
	if raw.Inc != 1 {
		return nil, ErrTypeMismatch
	}

	return raw.Data[:raw.N], nil
}

// inputVector returns the elements of x as a flat slice. Contiguous
// *mat.VecDense values are used directly; any other mat.Vector is gathered.
func inputVector(x mat.Vector) ([]float64, error) {
	if x == nil {
		return nil, ErrNilArgument
	}
	if vd, ok := x.(*mat.VecDense); ok {
		if vd == nil {
			return nil, ErrNilArgument
		}
		raw := vd.RawVector()
		if raw.N == 0 {
			return nil, nil
		}
		if raw.Inc == 1 {
			return raw.Data[:raw.N], nil
		}
	}
	out := make([]float64, x.Len())
	for i := range out {
		out[i] = x.AtVec(i)
	}

	return out, nil
}
