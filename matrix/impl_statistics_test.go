// SPDX-License-Identifier: MIT
// Package matrix_test - tests for column statistics.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/phonsep/matrix"
)

func TestColumnMeans(t *testing.T) {
	t.Parallel()

	X := FromRows(t, [][]float64{{1, 10}, {2, 20}, {3, 30}})
	means, err := matrix.ColumnMeans(X)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 20}, means, floatTol)

	meansSlow, err := matrix.ColumnMeans(hide{X})
	require.NoError(t, err)
	assert.InDeltaSlice(t, means, meansSlow, floatTol)

	_, err = matrix.ColumnMeans(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestCenterColumns(t *testing.T) {
	t.Parallel()

	X := FromRows(t, [][]float64{{1, 10}, {2, 20}, {3, 30}})
	Xc, means, err := matrix.CenterColumns(X)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 20}, means, floatTol)
	AllClose(t, FromRows(t, [][]float64{{-1, -10}, {0, 0}, {1, 10}}), Xc, floatTol)
	assert.Equal(t, 1.0, MustAt(t, X, 0, 0), "input must not be mutated")

	XcSlow, _, err := matrix.CenterColumns(hide{X})
	require.NoError(t, err)
	AllClose(t, Xc, XcSlow, floatTol)
}

func TestCovariance(t *testing.T) {
	t.Parallel()

	// Columns: x, 2x, -x + const.
	X := FromRows(t, [][]float64{
		{1, 2, 4},
		{2, 4, 3},
		{3, 6, 2},
		{4, 8, 1},
	})
	cov, means, err := matrix.Covariance(X)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.5, 5, 2.5}, means, floatTol)

	v := 5.0 / 3.0 // sample variance of 1..4
	want := FromRows(t, [][]float64{
		{v, 2 * v, -v},
		{2 * v, 4 * v, -2 * v},
		{-v, -2 * v, v},
	})
	AllClose(t, want, cov, floatTol)
}

func TestCovariance_TooFewRows(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.Covariance(FromRows(t, [][]float64{{1, 2}}))
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
