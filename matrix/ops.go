// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

const (
	opMul       = "Mul"
	opVecMul    = "VecMul"
	opTranspose = "Transpose"
	opRowSums   = "RowSums"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with the operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("matrix.%s: %w", tag, err)
}

// Mul returns a×b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: O(r*k*c); zero entries of a are skipped.
func Mul(a, b Matrix) (Matrix, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, fmt.Errorf("%dx%d * %dx%d: %w", a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch))
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Fast path for two Dense matrices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for i := 0; i < aRows; i++ {
				rowR := i * bCols
				for k := 0; k < aCols; k++ {
					av := da.data[i*aCols+k]
					if av == 0 {
						continue
					}
					rowB := k * bCols
					for j := 0; j < bCols; j++ {
						res.data[rowR+j] += av * db.data[rowB+j]
					}
				}
			}
			return res, nil
		}
	}

	for i := 0; i < aRows; i++ {
		for j := 0; j < bCols; j++ {
			var sum float64
			for k := 0; k < aCols; k++ {
				av, err := a.At(i, k)
				if err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				bv, err := b.At(k, j)
				if err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				sum += av * bv
			}
			res.data[i*bCols+j] = sum
		}
	}

	return res, nil
}

// VecMul returns the row vector x·m.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != m.Rows).
// Complexity: O(r*c).
func VecMul(x []float64, m Matrix) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opVecMul, ErrNilMatrix)
	}
	if len(x) != m.Rows() {
		return nil, matrixErrorf(opVecMul, fmt.Errorf("len %d vs %d rows: %w", len(x), m.Rows(), ErrDimensionMismatch))
	}
	out := make([]float64, m.Cols())
	if d, ok := m.(*Dense); ok {
		for i, xi := range x {
			if xi == 0 {
				continue
			}
			row := d.data[i*d.c : (i+1)*d.c]
			for j, v := range row {
				out[j] += xi * v
			}
		}
		return out, nil
	}
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		for j := range out {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opVecMul, err)
			}
			out[j] += xi * v
		}
	}

	return out, nil
}

// Transpose returns mᵀ as a new Dense.
func Transpose(m Matrix) (Matrix, error) {
	if m == nil {
		return nil, matrixErrorf(opTranspose, ErrNilMatrix)
	}
	res, err := NewDense(m.Cols(), m.Rows())
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*res.c+i] = v
		}
	}

	return res, nil
}

// RowSums returns s where s[i] = sum_j m[i,j].
func RowSums(m Matrix) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opRowSums, ErrNilMatrix)
	}
	out := make([]float64, m.Rows())
	for i := range out {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opRowSums, err)
			}
			out[i] += v
		}
	}

	return out, nil
}

// AllClose reports whether |a-b| <= atol + rtol*|b| holds for every entry.
// Negative tolerances are treated as their absolute values.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if a == nil || b == nil {
		return false, matrixErrorf(opAllClose, ErrNilMatrix)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false, matrixErrorf(opAllClose, ErrDimensionMismatch)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, _ := a.At(i, j)
			bv, _ := b.At(i, j)
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
