// SPDX-License-Identifier: MIT

package pca_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/phonsep/matrix"
	"github.com/katalvlaran/phonsep/pca"
)

// anisotropic returns n points in 3-D with standard deviations 5, 1, 0.1.
func anisotropic(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(42, 0))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{
			10 + 5*rng.NormFloat64(),
			-3 + rng.NormFloat64(),
			0.1 * rng.NormFloat64(),
		}
	}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func TestFit_ShapesAndVariance(t *testing.T) {
	t.Parallel()

	X := anisotropic(t, 500)
	p, err := pca.Fit(X, 2)
	require.NoError(t, err)

	r, c := p.Reduced.Shape()
	assert.Equal(t, 500, r)
	assert.Equal(t, 2, c)
	require.Len(t, p.ExplainedVarianceRatio, 2)
	assert.GreaterOrEqual(t, p.ExplainedVarianceRatio[0], p.ExplainedVarianceRatio[1])

	total := p.TotalExplainedVariance()
	assert.Greater(t, total, 0.0)
	assert.LessOrEqual(t, total, 1.0)
	// The dropped axis carries ~0.01/26.01 of the variance.
	assert.InDelta(t, 1.0, total, 0.01)
	assert.InDelta(t, 10.0, p.Means[0], 1.0)
}

func TestFit_ProjectionIsCentred(t *testing.T) {
	t.Parallel()

	p, err := pca.Fit(anisotropic(t, 200), 1)
	require.NoError(t, err)
	means, err := matrix.ColumnMeans(p.Reduced)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, means[0], 1e-9)

	// The first component is the high-variance axis: its variance ≈ 25.
	var ss float64
	for i := 0; i < p.Reduced.Rows(); i++ {
		v, _ := p.Reduced.At(i, 0)
		ss += v * v
	}
	sd := math.Sqrt(ss / float64(p.Reduced.Rows()-1))
	assert.InDelta(t, 5.0, sd, 0.75)
}

func TestFit_InputUntouched(t *testing.T) {
	t.Parallel()

	X := anisotropic(t, 50)
	before := append([]float64(nil), X.RawData()...)
	_, err := pca.Fit(X, 2)
	require.NoError(t, err)
	require.Equal(t, before, X.RawData())
}

func TestFit_Errors(t *testing.T) {
	t.Parallel()

	X := anisotropic(t, 10)
	for _, dims := range []int{0, -1, 3, 4} {
		_, err := pca.Fit(X, dims)
		assert.ErrorIs(t, err, pca.ErrBadDims, "dims=%d", dims)
	}

	small, err := matrix.NewDenseFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	_, err = pca.Fit(small, 2)
	require.NoError(t, err)
	_, err = pca.Fit(small, 3)
	assert.ErrorIs(t, err, pca.ErrBadDims)

	flat, err := matrix.NewDenseFromRows([][]float64{{1, 1}, {1, 1}, {1, 1}})
	require.NoError(t, err)
	_, err = pca.Fit(flat, 1)
	assert.ErrorIs(t, err, pca.ErrFitFailed)

	_, err = pca.Fit(nil, 1)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
