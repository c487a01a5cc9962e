// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points over the canonical kernels.
//   - Avoid any logic duplication: each facade delegates to the implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// ---------- Statistics ----------

// ColumnMeans returns the per-column average of X.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func ColumnMeans(X Matrix) ([]float64, error) { return columnMeans(X) }

// CenterColumns returns a centered copy of X (each column has zero mean)
// together with the subtracted means.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// Covariance returns the sample covariance (denominator r-1) of the columns
// of X and the column means.
// Errors: ErrNilMatrix, ErrInvalidDimensions (r < 2). Complexity: O(r*c^2).
func Covariance(X Matrix) (*Dense, []float64, error) { return covariance(X) }
