// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix interface.
// Kernels accept the interface and take flat-slice fast paths when the
// concrete type is *Dense; the interface keeps test doubles (hidden Dense
// wrappers) able to exercise the generic fallbacks.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error
}
