// SPDX-License-Identifier: MIT
// Package matrix provides the linear algebra kernels behind the scatter
// statistics and the PCA projection: matrix multiplication, the trace of a
// product, rank-1 updates and inversion through pivoted LU.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Notes:
//   - All kernels use central validators and wrap sentinels via matrixErrorf.
//   - *Dense operands unlock flat-slice fast paths; other implementations go
//     through At with full error propagation.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// PivotTolerance is the relative pivot threshold of LU: a pivot whose magnitude
// is below PivotTolerance·max|A[i,j]| is treated as zero and the matrix is
// reported singular.
const PivotTolerance = 1e-12

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul     = "Mul"
	opTrace   = "TraceOfProduct"
	opOuter   = "AddOuter"
	opInverse = "Inverse"
	opLU      = "LU"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul returns the product C = A × B in a fresh Dense. It projects centred
// observations onto principal axes.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate the r×c result.
//   - Stage 2: Dense×Dense accumulates C[i,:] += A[i,k]·B[k,:] row by row
//     (i→k order, zero entries of A skipped); any other operand pair reads
//     through At with a dot product per output cell.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, wrapped At errors (fallback).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	r, n, c := a.Rows(), a.Cols(), b.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if okA && okB {
		var i, k int
		for i = 0; i < r; i++ {
			dst := out.data[i*c : (i+1)*c]
			for k = 0; k < n; k++ {
				if s := da.data[i*n+k]; s != 0 {
					floats.AddScaled(dst, s, db.data[k*c:(k+1)*c])
				}
			}
		}
		return out, nil
	}

	var (
		i, j, k int
		x, y    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			var dot float64
			for k = 0; k < n; k++ {
				if x, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if y, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				dot += x * y
			}
			out.data[i*c+j] = dot
		}
	}

	return out, nil
}

// TraceOfProduct returns trace(a×b) without materializing the product:
// Σ_i Σ_k a[i,k]·b[k,i]. a must be r×n and b n×r.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*n) time, O(1) extra space.
func TraceOfProduct(a, b Matrix) (float64, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	if a.Rows() != b.Cols() {
		return 0, matrixErrorf(opTrace, ErrDimensionMismatch)
	}
	r, n := a.Rows(), a.Cols()
	var s, av, bv float64
	var err error
	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	var i, k int
	for i = 0; i < r; i++ {
		for k = 0; k < n; k++ {
			if okA && okB {
				s += da.data[i*n+k] * db.data[k*r+i]
				continue
			}
			if av, err = a.At(i, k); err != nil {
				return 0, matrixErrorf(opTrace, err)
			}
			if bv, err = b.At(k, i); err != nil {
				return 0, matrixErrorf(opTrace, err)
			}
			s += av * bv
		}
	}

	return s, nil
}

// AddOuter performs the in-place rank-1 update dst += alpha·u·vᵀ.
// dst must be len(u)×len(v). This is the accumulation primitive of scatter
// matrices (Σ (x−m)(x−m)ᵀ).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(len(u)*len(v)).
func AddOuter(dst *Dense, alpha float64, u, v []float64) error {
	if dst == nil {
		return matrixErrorf(opOuter, ErrNilMatrix)
	}
	if err := ValidateVecLen(u, dst.r); err != nil {
		return matrixErrorf(opOuter, err)
	}
	if err := ValidateVecLen(v, dst.c); err != nil {
		return matrixErrorf(opOuter, err)
	}
	var i, j, base int
	var au float64
	for i = 0; i < dst.r; i++ {
		au = alpha * u[i]
		if au == 0 {
			continue
		}
		base = i * dst.c
		for j = 0; j < dst.c; j++ {
			dst.data[base+j] += au * v[j]
		}
	}

	return nil
}

// luFactor overwrites a (n×n, row-major) with the packed factors of
// P·A = L·U, L unit lower triangular below the diagonal and U on and above
// it. Row i of P·A is row perm[i] of A.
//
// A pivot whose magnitude is at most max(floor, PivotTolerance·max|A|) is
// reported as ErrSingular, as is an all-zero matrix. The pivot row is the
// first row holding the largest |A[i,k]|, so the factorization is
// deterministic.
func luFactor(a []float64, n int, floor float64) ([]int, error) {
	scale := floats.Norm(a, math.Inf(1))
	if scale == 0 {
		return nil, ErrSingular
	}
	tol := math.Max(floor, PivotTolerance*scale)

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var i, k, p int
	var best, v, f float64
	for k = 0; k < n; k++ {
		p, best = k, math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best <= tol {
			return nil, fmt.Errorf("pivot %d: %w", k, ErrSingular)
		}
		if p != k {
			for i = 0; i < n; i++ {
				a[k*n+i], a[p*n+i] = a[p*n+i], a[k*n+i]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}
		pivotRow := a[k*n+k+1 : (k+1)*n]
		for i = k + 1; i < n; i++ {
			f = a[i*n+k] / a[k*n+k]
			a[i*n+k] = f
			if f != 0 {
				floats.AddScaled(a[i*n+k+1:(i+1)*n], -f, pivotRow)
			}
		}
	}

	return perm, nil
}

// Inverse computes m⁻¹ from the pivoted factorization P·m = L·U.
//
// floor is an absolute pivot threshold that callers who know the scale of
// the data behind m (e.g. a scatter matrix accumulated from observations)
// use to reject a matrix that is zero up to rounding. The relative threshold
// PivotTolerance·max|m| always applies; pass 0 to rely on it alone.
//
// Implementation:
//   - Stage 1: copy m and factorize it in place.
//   - Stage 2: for each column e_col of the identity, solve L·y = P·e_col
//     top-down, then U·x = y bottom-up, and store x as column col.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix, floor float64) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.Rows()
	lu, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if dm, ok := m.(*Dense); ok {
		copy(lu.data, dm.data)
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if lu.data[i*n+j], err = m.At(i, j); err != nil {
					return nil, matrixErrorf(opInverse, err)
				}
			}
		}
	}
	perm, err := luFactor(lu.data, n, floor)
	if err != nil {
		return nil, matrixErrorf(opInverse, matrixErrorf(opLU, err))
	}

	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	a := lu.data
	x := make([]float64, n)
	var col, i int
	for col = 0; col < n; col++ {
		for i = 0; i < n; i++ {
			x[i] = -floats.Dot(a[i*n:i*n+i], x[:i])
			if perm[i] == col {
				x[i]++
			}
		}
		for i = n - 1; i >= 0; i-- {
			x[i] = (x[i] - floats.Dot(a[i*n+i+1:(i+1)*n], x[i+1:])) / a[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
