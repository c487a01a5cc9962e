// SPDX-License-Identifier: MIT
// Package matrix_test - unit tests for Dense storage and accessors.

package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/phonsep/matrix"
)

func TestNewDenseDefaultZero(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ rows, cols int }{
		{1, 1},
		{3, 3},
		{2, 6},
	} {
		tc := tc
		t.Run(fmt.Sprintf("%dx%d", tc.rows, tc.cols), func(t *testing.T) {
			t.Parallel()
			m := MustDense(t, tc.rows, tc.cols)
			r, c := m.Shape()
			assert.Equal(t, tc.rows, r)
			assert.Equal(t, tc.cols, c)
			for i := 0; i < tc.rows; i++ {
				for j := 0; j < tc.cols; j++ {
					assert.Zero(t, MustAt(t, m, i, j))
				}
			}
		})
	}
}

func TestNewDense_InvalidDimensions(t *testing.T) {
	t.Parallel()
	for _, shape := range [][2]int{{0, 1}, {1, 0}, {-1, 2}} {
		_, err := matrix.NewDense(shape[0], shape[1])
		assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

func TestNewDenseFromRows(t *testing.T) {
	t.Parallel()

	src := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m := FromRows(t, src)
	src[0][0] = 99 // input must not be aliased
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))
	assert.Equal(t, 6.0, MustAt(t, m, 1, 2))

	_, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrRaggedRows)

	_, err = matrix.NewDenseFromRows([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.NewDenseFromRows(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestNewDenseFrom(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 3.0, MustAt(t, m, 1, 0))

	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.Inf(1)})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 3)
	MustSet(t, m, 1, 2, 7.5)
	assert.Equal(t, 7.5, MustAt(t, m, 1, 2))

	_, err := m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, -1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 3, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
}

func TestDense_RowViewAliases(t *testing.T) {
	t.Parallel()

	m := FromRows(t, [][]float64{{1, 2}, {3, 4}})
	row, err := m.RowView(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, row)
	row[0] = 30
	assert.Equal(t, 30.0, MustAt(t, m, 1, 0))

	_, err = m.RowView(2)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_SelectRows(t *testing.T) {
	t.Parallel()

	m := FromRows(t, [][]float64{{1, 1}, {2, 2}, {3, 3}})
	sub, err := m.SelectRows([]int{2, 0, 2})
	require.NoError(t, err)
	AllClose(t, FromRows(t, [][]float64{{3, 3}, {1, 1}, {3, 3}}), sub, 0)

	_, err = m.SelectRows(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = m.SelectRows([]int{3})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestValidators(t *testing.T) {
	t.Parallel()

	var typedNil *matrix.Dense
	assert.ErrorIs(t, matrix.ValidateNotNil(typedNil), matrix.ErrNilMatrix)
	assert.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)

	a, b := MustDense(t, 2, 3), MustDense(t, 3, 2)
	assert.NoError(t, matrix.ValidateMulCompatible(a, b))
	assert.ErrorIs(t, matrix.ValidateMulCompatible(a, a), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateSquare(a), matrix.ErrNonSquare)
	assert.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}
