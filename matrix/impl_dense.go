// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/RowView return errors instead of panicking.
//   - Support no-copy row views (RowView) and copy-based row-subset extraction (SelectRows),
//     which is how activation blocks are sliced per segment and samples filtered per labelling.
//   - Enforce a numeric policy (rejection of NaN/Inf) at ingestion from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); RowView: O(1); SelectRows: O(k*c).

package matrix

import (
	"fmt"
	"math"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"         // method tag used in error wrappers
	ctxSet    = "Set"        // method tag used in error wrappers
	ctxRow    = "RowView"    // method tag used in error wrappers
	ctxSelect = "SelectRows" // ctor tag for Dense.SelectRows
	ctxRows   = "NewDenseFromRows"
	ctxData   = "NewDenseFrom"
)

// DefaultValidateNaNInf is the numeric policy applied to every new Dense:
// NaN and ±Inf are rejected at Set and at slice ingestion.
const DefaultValidateNaNInf = true

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Behavior highlights:
//   - Stable, human-friendly messages; preserves sentinel via %w.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertion for interface conformance.
var _ Matrix = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and set the default numeric policy.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// make() zero-fills deterministically.
	buf := make([]float64, rows*cols)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           buf,
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFromRows copies a slice-of-rows into a fresh Dense.
//
// Implementation:
//   - Stage 1: validate len(rows)>0, len(rows[0])>0 (ErrInvalidDimensions).
//   - Stage 2: copy row by row, rejecting ragged input (ErrRaggedRows) and,
//     under the numeric policy, NaN/Inf values (ErrNaNInf).
//
// Behavior highlights:
//   - The input is never aliased; later mutation of rows does not affect the result.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	m, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}

	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, denseErrorf(ctxRows, i, len(rows[i]), ErrRaggedRows)
		}
		base := i * c
		for j = 0; j < c; j++ {
			v = rows[i][j]
			if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
				return nil, denseErrorf(ctxRows, i, j, ErrNaNInf)
			}
			m.data[base+j] = v
		}
	}

	return m, nil
}

// NewDenseFrom copies a flat row-major buffer of length rows*cols into a fresh Dense.
//
// Errors:
//   - ErrInvalidDimensions for non-positive shapes.
//   - ErrDimensionMismatch when len(data) != rows*cols.
//   - ErrNaNInf for non-finite entries.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, denseErrorf(ctxData, rows, cols, ErrDimensionMismatch)
	}
	for k, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, denseErrorf(ctxData, k/cols, k%cols, ErrNaNInf)
		}
	}
	copy(m.data, data)

	return m, nil
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods wrap the sentinel with their own method tag and coordinates.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// RowView returns row i as a slice aliasing the backing buffer.
// Writes through the returned slice bypass the numeric policy; callers that
// only read (statistics, aggregation) use it to avoid per-element At calls.
//
// Errors:
//   - ErrOutOfRange when i is not a valid row.
//
// Complexity: O(1).
func (m *Dense) RowView(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// RawData returns the row-major backing buffer (aliasing, len == Rows*Cols).
// It exists for zero-copy hand-off to external numeric libraries.
func (m *Dense) RawData() []float64 { return m.data }

// SelectRows materializes a copy made of the given rows (in the given order),
// keeping every column.
//
// Implementation:
//   - Stage 1: reject an empty index set (ErrInvalidDimensions).
//   - Stage 2: bounds-check each index and copy the row with a single copy().
//
// Behavior highlights:
//   - Order of rowsIdx is preserved exactly; duplicates are allowed.
//   - Numeric policy is inherited from the base.
//
// Complexity:
//   - Time O(k*c), Space O(k*c) where k = len(rowsIdx).
func (m *Dense) SelectRows(rowsIdx []int) (*Dense, error) {
	k := len(rowsIdx)
	if k == 0 {
		return nil, fmt.Errorf("Dense.%s: %w", ctxSelect, ErrInvalidDimensions)
	}
	res, err := NewDense(k, m.c)
	if err != nil {
		return nil, err
	}
	res.validateNaNInf = m.validateNaNInf

	var i, ri int
	for i = 0; i < k; i++ {
		ri = rowsIdx[i]
		if ri < 0 || ri >= m.r {
			return nil, fmt.Errorf("Dense.%s: row index %d: %w", ctxSelect, ri, ErrOutOfRange)
		}
		copy(res.data[i*m.c:(i+1)*m.c], m.data[ri*m.c:(ri+1)*m.c])
	}

	return res, nil
}
