// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the linear algebra kernels.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/phonsep/matrix"
)

func TestMul(t *testing.T) {
	t.Parallel()

	a := FromRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	b := FromRows(t, [][]float64{{7, 8, 9}, {10, 11, 12}})
	want := FromRows(t, [][]float64{{27, 30, 33}, {61, 68, 75}, {95, 106, 117}})

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	AllClose(t, want, got, 0)

	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	AllClose(t, want, slow, 0)

	_, err = matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTraceOfProduct(t *testing.T) {
	t.Parallel()

	a := FromRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	b := FromRows(t, [][]float64{{7, 8, 9}, {10, 11, 12}})

	// diag(a×b) = 27, 68, 117
	want := 212.0

	got, err := matrix.TraceOfProduct(a, b)
	require.NoError(t, err)
	assert.InDelta(t, want, got, floatTol)

	got, err = matrix.TraceOfProduct(hide{a}, b)
	require.NoError(t, err)
	assert.InDelta(t, want, got, floatTol)

	_, err = matrix.TraceOfProduct(a, FromRows(t, [][]float64{{1, 2}, {3, 4}}))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAddOuter(t *testing.T) {
	t.Parallel()

	dst := MustDense(t, 2, 3)
	require.NoError(t, matrix.AddOuter(dst, 2, []float64{1, -1}, []float64{1, 2, 3}))
	require.NoError(t, matrix.AddOuter(dst, 1, []float64{1, 0}, []float64{1, 1, 1}))
	AllClose(t, FromRows(t, [][]float64{{3, 5, 7}, {-2, -4, -6}}), dst, 0)

	assert.ErrorIs(t, matrix.AddOuter(dst, 1, []float64{1}, []float64{1, 2, 3}), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.AddOuter(nil, 1, nil, nil), matrix.ErrNilMatrix)
}

func TestInverse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   [][]float64
		want [][]float64
	}{
		{"General2x2", [][]float64{{4, 7}, {2, 6}}, [][]float64{{0.6, -0.7}, {-0.2, 0.4}}},
		{"NeedsPivot", [][]float64{{0, 1}, {1, 0}}, [][]float64{{0, 1}, {1, 0}}},
		{"Diagonal", [][]float64{{2, 0, 0}, {0, 4, 0}, {0, 0, 0.5}}, [][]float64{{0.5, 0, 0}, {0, 0.25, 0}, {0, 0, 2}}},
		{"PivotInLastColumn", [][]float64{{0, 2, 1}, {4, 1, -1}, {2, 3, 5}}, [][]float64{
			{-8.0 / 34, 7.0 / 34, 3.0 / 34},
			{22.0 / 34, 2.0 / 34, -4.0 / 34},
			{-10.0 / 34, -4.0 / 34, 8.0 / 34},
		}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			inv, err := matrix.Inverse(FromRows(t, tc.in), 0)
			require.NoError(t, err)
			AllClose(t, FromRows(t, tc.want), inv, floatTol)

			invSlow, err := matrix.Inverse(hide{FromRows(t, tc.in)}, 0)
			require.NoError(t, err)
			AllClose(t, inv, invSlow, floatTol)
		})
	}
}

func TestInverse_TimesInputIsIdentity(t *testing.T) {
	t.Parallel()

	a := FromRows(t, [][]float64{
		{3, 1, 0.5, 0},
		{1, 4, 0.2, 0.1},
		{0.5, 0.2, 5, 1},
		{0, 0.1, 1, 2},
	})
	inv, err := matrix.Inverse(a, 0)
	require.NoError(t, err)
	prod, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, MustAt(t, prod, i, j), 1e-12, "[%d,%d]", i, j)
		}
	}
}

func TestInverse_Singular(t *testing.T) {
	t.Parallel()

	for _, rows := range [][][]float64{
		{{1, 2}, {2, 4}},
		{{0, 0}, {0, 0}},
		{{1, 2, 3}, {4, 5, 6}, {5, 7, 9}},
	} {
		_, err := matrix.Inverse(FromRows(t, rows), 0)
		assert.ErrorIs(t, err, matrix.ErrSingular)
	}

	_, err := matrix.Inverse(MustDense(t, 2, 3), 0)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.Inverse(nil, 0)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestInverse_Floor(t *testing.T) {
	t.Parallel()

	// Entries are rounding noise relative to a data scale of 1: the relative
	// threshold accepts them, an absolute floor rejects them.
	tiny := FromRows(t, [][]float64{{3e-17, 1e-17}, {1e-17, 2e-17}})
	_, err := matrix.Inverse(tiny, 0)
	require.NoError(t, err)
	_, err = matrix.Inverse(tiny, 1e-12)
	assert.ErrorIs(t, err, matrix.ErrSingular)

	a := FromRows(t, [][]float64{{4, 7}, {2, 6}})
	inv, err := matrix.Inverse(a, 1e-12)
	require.NoError(t, err)
	AllClose(t, FromRows(t, [][]float64{{0.6, -0.7}, {-0.2, 0.4}}), inv, floatTol)

	_, err = matrix.Inverse(a, 10)
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

func TestInverse_WideDynamicRange(t *testing.T) {
	t.Parallel()

	// A small, well-conditioned matrix is judged on its own magnitude, not
	// on that of whatever it is later multiplied with.
	a := FromRows(t, [][]float64{{2e-6, 0}, {0, 1e-6}})
	inv, err := matrix.Inverse(a, 0)
	require.NoError(t, err)
	AllClose(t, FromRows(t, [][]float64{{5e5, 0}, {0, 1e6}}), inv, 1e-6)
}
