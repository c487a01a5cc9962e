// SPDX-License-Identifier: MIT

// Package pca reduces an observation matrix to its leading principal
// components. The fit is unsupervised: it sees only the activations, never
// the labels, so reducing before a permutation test cannot leak class
// information into the basis.
//
// The decomposition is gonum's stat.PC (thin SVD of the centred data).
// Component signs are whatever the SVD returns; every statistic downstream
// is invariant to them.
package pca

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/phonsep/matrix"
)

var (
	// ErrBadDims indicates a target dimension outside [1, min(D-1, N)].
	ErrBadDims = errors.New("pca: invalid target dimension")

	// ErrFitFailed indicates the decomposition did not converge or the data
	// has no variance to explain.
	ErrFitFailed = errors.New("pca: fit failed")
)

// Projection is the result of Fit.
type Projection struct {
	// Reduced is the N×dims projection of the centred input.
	Reduced *matrix.Dense
	// ExplainedVarianceRatio[i] is the share of total variance carried by
	// component i, in decreasing order.
	ExplainedVarianceRatio []float64
	// Means are the column means subtracted before projecting.
	Means []float64
}

// TotalExplainedVariance returns the summed ratio of the kept components,
// a value in (0, 1].
func (p *Projection) TotalExplainedVariance() float64 {
	return floats.Sum(p.ExplainedVarianceRatio)
}

// Fit projects X (N×D) onto its first dims principal components.
//
// Implementation:
//   - Stage 1: validate 1 ≤ dims < D and dims ≤ N.
//   - Stage 2: centre the columns and run stat.PC on the centred data.
//   - Stage 3: multiply the centred data by the first dims component vectors
//     (matrix.Mul) and normalise the component variances by their total.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrBadDims, ErrFitFailed.
//
// Complexity:
//   - Time O(N·D·min(N, D)) for the SVD, Space O(N·D + D²).
func Fit(X *matrix.Dense, dims int) (*Projection, error) {
	if X == nil {
		return nil, fmt.Errorf("Fit: %w", matrix.ErrNilMatrix)
	}
	n, d := X.Shape()
	if dims < 1 || dims >= d || dims > n {
		return nil, fmt.Errorf("Fit: dims=%d for %d×%d input: %w", dims, n, d, ErrBadDims)
	}

	centred, means, err := matrix.CenterColumns(X)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}
	cm := mat.NewDense(n, d, centred.RawData())

	var pc stat.PC
	if ok := pc.PrincipalComponents(cm, nil); !ok {
		return nil, fmt.Errorf("Fit: SVD did not converge: %w", ErrFitFailed)
	}
	vars := pc.VarsTo(nil)
	total := floats.Sum(vars)
	if total <= 0 {
		return nil, fmt.Errorf("Fit: input has zero variance: %w", ErrFitFailed)
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	axes, err := matrix.NewDense(d, dims)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}
	for i := 0; i < d; i++ {
		copy(axes.RawData()[i*dims:(i+1)*dims], vecs.RawRowView(i)[:dims])
	}
	reduced, err := matrix.Mul(centred, axes)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}
	ratio := make([]float64, dims)
	for i := range ratio {
		ratio[i] = vars[i] / total
	}

	return &Projection{Reduced: reduced, ExplainedVarianceRatio: ratio, Means: means}, nil
}
