// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column statistics the clustering measures are built on
//     (means, centering, sample covariance) as deterministic compositions
//     over flat-buffer loops and the canonical kernels.
//
// Exposed API (see api.go):
//   - ColumnMeans(X)   -> means               // per-column average
//   - CenterColumns(X) -> (Xc, means)         // subtract per-column mean
//   - Covariance(X)    -> (Cov, means)        // sample covariance of columns: (Xcᵀ Xc)/(r-1)
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.

package matrix

import "fmt"

const (
	opColumnMeans   = "ColumnMeans"
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
)

// columnMeans returns Σ_i X[i,j] / r for every column j.
//
// Errors:
//   - ErrNilMatrix; wrapped At errors on the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func columnMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)

	var i, j, base int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				means[j] += d.data[base+j]
			}
		}
	} else {
		var v float64
		var err error
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, matrixErrorf(opColumnMeans, err)
				}
				means[j] += v
			}
		}
	}

	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	return means, nil
}

// centerColumns subtracts the per-column mean from every element.
//
// Implementation:
//   - Stage 1: columnMeans(X).
//   - Stage 2: allocate Xc and write X[i,j] - means[j] row by row.
//
// Returns:
//   - *Dense: centered copy (r×c); X is never mutated.
//   - []float64: column means (len=c).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func centerColumns(X Matrix) (*Dense, []float64, error) {
	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := X.Rows(), X.Cols()
	Xc, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	var i, j, base int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				Xc.data[base+j] = d.data[base+j] - means[j]
			}
		}
		return Xc, means, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opCenterColumns, err)
			}
			Xc.data[i*c+j] = v - means[j]
		}
	}

	return Xc, means, nil
}

// covariance computes the sample covariance of the columns of X.
//
// Implementation:
//   - Stage 1: validate r ≥ 2 (the r-1 denominator must be positive).
//   - Stage 2: Xc = centerColumns(X).
//   - Stage 3: accumulate the upper triangle of Xcᵀ·Xc row by row, mirror it,
//     and scale by 1/(r-1).
//
// Returns:
//   - *Dense: c×c symmetric covariance.
//   - []float64: column means.
//
// Errors:
//   - ErrNilMatrix; ErrInvalidDimensions when r < 2.
//
// Complexity:
//   - Time O(r*c^2), Space O(r*c + c^2).
func covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r, c := X.Rows(), X.Cols()
	if r < 2 {
		return nil, nil, matrixErrorf(opCovariance, fmt.Errorf("need at least 2 rows, got %d: %w", r, ErrInvalidDimensions))
	}

	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := NewDense(c, c)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	var i, j, k, base int
	var xj float64
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			xj = Xc.data[base+j]
			if xj == 0 {
				continue
			}
			for k = j; k < c; k++ {
				cov.data[j*c+k] += xj * Xc.data[base+k]
			}
		}
	}

	inv := 1.0 / float64(r-1)
	for j = 0; j < c; j++ {
		for k = j; k < c; k++ {
			cov.data[j*c+k] *= inv
			cov.data[k*c+j] = cov.data[j*c+k]
		}
	}

	return cov, means, nil
}
