// SPDX-License-Identifier: MIT

package problem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Infinite-bound sentinels: a lower bound <= NegInfBound or an upper bound
// >= PosInfBound is absent.
const (
	NegInfBound = -1e20
	PosInfBound = 1e20
)

// BoundKind classifies a (lower, upper) pair.
type BoundKind int

const (
	Free BoundKind = iota
	LowerOnly
	UpperOnly
	TwoSided
	Fixed
)

// String implements fmt.Stringer.
func (k BoundKind) String() string {
	switch k {
	case Free:
		return "free"
	case LowerOnly:
		return "lower"
	case UpperOnly:
		return "upper"
	case TwoSided:
		return "two-sided"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// BoundKindOf classifies lower <= x <= upper under the infinite-bound convention.
func BoundKindOf(lower, upper float64) BoundKind {
	hasLo, hasUp := lower > NegInfBound, upper < PosInfBound
	switch {
	case hasLo && hasUp && lower == upper:
		return Fixed
	case hasLo && hasUp:
		return TwoSided
	case hasLo:
		return LowerOnly
	case hasUp:
		return UpperOnly
	default:
		return Free
	}
}

// Summary counts bounds by kind.
type Summary struct {
	N        int
	Free     int
	Lower    int
	Upper    int
	TwoSided int
	Fixed    int

	// MinGap is the smallest upper-lower over two-sided bounds, +Inf if none.
	MinGap float64
}

// Summarize classifies every (lower[i], upper[i]) pair.
//
// Errors:
//   - ErrDimensionMismatch when the slices differ in length.
//   - ErrInconsistentBounds when lower[i] > upper[i].
func Summarize(lower, upper []float64) (Summary, error) {
	if len(lower) != len(upper) {
		return Summary{}, fmt.Errorf("Summarize: %w", ErrDimensionMismatch)
	}
	gaps := make([]float64, len(lower))
	floats.SubTo(gaps, upper, lower)
	if len(gaps) > 0 && floats.Min(gaps) < 0 {
		i := floats.MinIdx(gaps)

		return Summary{}, fmt.Errorf("Summarize: index %d [%g, %g]: %w", i, lower[i], upper[i], ErrInconsistentBounds)
	}

	s := Summary{N: len(lower), MinGap: math.Inf(1)}
	var twoSided []float64
	for i := range lower {
		switch BoundKindOf(lower[i], upper[i]) {
		case Free:
			s.Free++
		case LowerOnly:
			s.Lower++
		case UpperOnly:
			s.Upper++
		case TwoSided:
			s.TwoSided++
			twoSided = append(twoSided, gaps[i])
		case Fixed:
			s.Fixed++
		}
	}
	if len(twoSided) > 0 {
		s.MinGap = floats.Min(twoSided)
	}

	return s, nil
}

// SplitConstraints returns the indices of equality (lower == upper) and
// inequality constraints, each in increasing order.
func SplitConstraints(lower, upper []float64) (eq, ineq []int, err error) {
	if len(lower) != len(upper) {
		return nil, nil, fmt.Errorf("SplitConstraints: %w", ErrDimensionMismatch)
	}
	for i := range lower {
		if BoundKindOf(lower[i], upper[i]) == Fixed {
			eq = append(eq, i)
		} else {
			ineq = append(ineq, i)
		}
	}

	return eq, ineq, nil
}
