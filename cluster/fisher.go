// SPDX-License-Identifier: MIT

package cluster

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/phonsep/matrix"
)

const opFisher = "FisherCriterion"

// FisherCriterion returns J = trace(Sw⁻¹·Sb), the multi-class Fisher
// discriminant criterion, where
//
//	Sw = Σ_k Σ_{n∈k} (x_n − m_k)(x_n − m_k)ᵀ
//	Sb = Σ_k N_k (m_k − m)(m_k − m)ᵀ
//
// with m_k the class means and m the global mean.
//
// Implementation:
//   - Stage 1: validate and group labels (≥ 2 classes).
//   - Stage 2: Sw via the covariance fast path, Σ_k (N_k − 1)·Cov(X_k).
//     If any class breaks it (a singleton class has no sample covariance),
//     accumulate the outer products directly instead.
//   - Stage 3: Sb from the class means, then invert Sw by pivoted LU and
//     take the trace of the product without forming it.
//
// Errors:
//   - ErrLabelMismatch, ErrTooFewClusters, matrix.ErrNilMatrix.
//   - ErrSingularScatter (wrapping matrix.ErrSingular) when Sw cannot be
//     inverted. The error is never converted to 0 or NaN.
//
// Complexity:
//   - Time O(N·D² + D³), Space O(N·D + D²).
func FisherCriterion(X *matrix.Dense, labels []int) (float64, error) {
	p, rows, err := checkInput(X, labels)
	if err != nil {
		return 0, clusterErrorf(opFisher, err)
	}
	global, err := matrix.ColumnMeans(X)
	if err != nil {
		return 0, clusterErrorf(opFisher, err)
	}

	j, err := fisher(X, rows, p, global, scatterFloor(X))
	if err != nil {
		return 0, clusterErrorf(opFisher, err)
	}

	return j, nil
}

// fisher computes the criterion for one partition of X given its global mean.
func fisher(X *matrix.Dense, rows [][]float64, p partition, global []float64, floor float64) (float64, error) {
	Sw, means, err := withinScatterCovariance(X, p)
	if err != nil {
		Sw, means, err = withinScatterManual(rows, X.Cols(), p)
		if err != nil {
			return 0, err
		}
	}
	Sb, err := betweenScatter(means, p.counts, global)
	if err != nil {
		return 0, err
	}

	return fisherTrace(Sw, Sb, floor)
}

// scatterFloor is the magnitude below which a within-class scatter entry is
// rounding noise: N squared centring errors of a few ulps of the largest
// coordinate. A scatter whose pivots all stay under it comes from classes
// that are points.
func scatterFloor(X *matrix.Dense) float64 {
	ulp := 4 * epsilon * floats.Norm(X.RawData(), math.Inf(1))

	return float64(X.Rows()) * ulp * ulp
}

// epsilon is the float64 machine epsilon, 2⁻⁵².
var epsilon = math.Nextafter(1, 2) - 1

// withinScatterCovariance builds Sw = Σ_k (N_k − 1)·Cov(X_k) and returns the
// class means as a by-product. It fails on any class with fewer than two rows.
func withinScatterCovariance(X *matrix.Dense, p partition) (*matrix.Dense, [][]float64, error) {
	d := X.Cols()
	Sw, err := matrix.NewZeros(d, d)
	if err != nil {
		return nil, nil, err
	}
	means := make([][]float64, p.k())
	for k, idx := range p.members() {
		sub, err := X.SelectRows(idx)
		if err != nil {
			return nil, nil, err
		}
		cov, mk, err := matrix.Covariance(sub)
		if err != nil {
			return nil, nil, err
		}
		floats.AddScaled(Sw.RawData(), float64(len(idx)-1), cov.RawData())
		means[k] = mk
	}

	return Sw, means, nil
}

// withinScatterManual accumulates Sw as a sum of rank-1 updates
// (x − m_k)(x − m_k)ᵀ. Singleton classes contribute nothing.
func withinScatterManual(rows [][]float64, d int, p partition) (*matrix.Dense, [][]float64, error) {
	means := centroids(rows, d, p)
	Sw, err := matrix.NewZeros(d, d)
	if err != nil {
		return nil, nil, err
	}
	diff := make([]float64, d)
	for i, row := range rows {
		floats.SubTo(diff, row, means[p.assign[i]])
		if err = matrix.AddOuter(Sw, 1, diff, diff); err != nil {
			return nil, nil, err
		}
	}

	return Sw, means, nil
}

// betweenScatter builds Sb = Σ_k N_k (m_k − m)(m_k − m)ᵀ.
func betweenScatter(means [][]float64, counts []int, global []float64) (*matrix.Dense, error) {
	d := len(global)
	Sb, err := matrix.NewZeros(d, d)
	if err != nil {
		return nil, err
	}
	diff := make([]float64, d)
	for k, mk := range means {
		floats.SubTo(diff, mk, global)
		if err = matrix.AddOuter(Sb, float64(counts[k]), diff, diff); err != nil {
			return nil, err
		}
	}

	return Sb, nil
}

// fisherTrace returns trace(Sw⁻¹·Sb). Singularity is judged on Sw alone:
// relative to its own magnitude, and against floor so that a scatter that is
// zero up to rounding is rejected.
func fisherTrace(Sw, Sb *matrix.Dense, floor float64) (float64, error) {
	inv, err := matrix.Inverse(Sw, floor)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return 0, fmt.Errorf("%w: %w", ErrSingularScatter, err)
		}
		return 0, err
	}

	return matrix.TraceOfProduct(inv, Sb)
}

// fisherEvaluator binds the Fisher criterion to X. The global mean, the row
// views and the rounding floor do not depend on the labels and are computed
// once; Sw is rebuilt directly for every labelling, exactly as
// FisherCriterion does, so both agree bit for bit.
type fisherEvaluator struct {
	X      *matrix.Dense
	rows   [][]float64
	global []float64
	floor  float64
}

func newFisherEvaluator(X *matrix.Dense) (*fisherEvaluator, error) {
	rows, err := rowsOf(X)
	if err != nil {
		return nil, err
	}
	global, err := matrix.ColumnMeans(X)
	if err != nil {
		return nil, err
	}

	return &fisherEvaluator{X: X, rows: rows, global: global, floor: scatterFloor(X)}, nil
}

// Evaluate implements Evaluator.
func (e *fisherEvaluator) Evaluate(labels []int) (float64, error) {
	p, err := newPartition(len(e.rows), labels)
	if err != nil {
		return 0, clusterErrorf(opFisher, err)
	}

	j, err := fisher(e.X, e.rows, p, e.global, e.floor)
	if err != nil {
		return 0, clusterErrorf(opFisher, err)
	}

	return j, nil
}
