// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"

	"github.com/katalvlaran/phonsep/matrix"
)

// Evaluator computes one statistic on a fixed observation matrix for any
// label vector. Implementations hold only read-only state after Prepare and
// may be called from many goroutines at once.
type Evaluator interface {
	Evaluate(labels []int) (float64, error)
}

// Option customises Prepare.
type Option func(*options)

type options struct {
	distanceCacheLimit int
}

func defaultOptions() options {
	return options{distanceCacheLimit: DefaultDistanceCacheLimit}
}

// WithDistanceCacheLimit sets the largest N for which Silhouette and Dunn
// evaluators precompute the pairwise distance table. n ≤ 0 disables caching.
func WithDistanceCacheLimit(n int) Option {
	return func(o *options) { o.distanceCacheLimit = n }
}

// Prepare binds measure m to X.
//
// Implementation:
//   - Fisher: the global mean and the rounding floor are computed once; each
//     evaluation rebuilds Sw directly from the class members.
//   - Silhouette, Dunn: the N(N−1)/2 pairwise distances are computed once
//     when N ≤ the cache limit, otherwise on every evaluation.
//   - Davies–Bouldin: centroid based, nothing to precompute.
//
// Errors:
//   - ErrUnknownMeasure, matrix.ErrNilMatrix.
func Prepare(m Measure, X *matrix.Dense, opts ...Option) (Evaluator, error) {
	if X == nil {
		return nil, fmt.Errorf("Prepare: %w", matrix.ErrNilMatrix)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	switch m {
	case Fisher:
		e, err := newFisherEvaluator(X)
		if err != nil {
			return nil, fmt.Errorf("Prepare(%s): %w", m, err)
		}
		return e, nil
	case DaviesBouldin:
		rows, err := rowsOf(X)
		if err != nil {
			return nil, fmt.Errorf("Prepare(%s): %w", m, err)
		}
		return &centroidEvaluator{rows: rows, d: X.Cols()}, nil
	case Silhouette, Dunn:
		rows, err := rowsOf(X)
		if err != nil {
			return nil, fmt.Errorf("Prepare(%s): %w", m, err)
		}
		var dist pairwise = directDistances{rows: rows}
		if len(rows) <= o.distanceCacheLimit {
			dist = newCondensedDistances(rows)
		}
		return &pairwiseEvaluator{measure: m, dist: dist}, nil
	}

	return nil, fmt.Errorf("Prepare: %w: %s", ErrUnknownMeasure, m)
}

type centroidEvaluator struct {
	rows [][]float64
	d    int
}

func (e *centroidEvaluator) Evaluate(labels []int) (float64, error) {
	p, err := newPartition(len(e.rows), labels)
	if err != nil {
		return 0, clusterErrorf(opDaviesBouldin, err)
	}

	return daviesBouldin(e.rows, e.d, p), nil
}

type pairwiseEvaluator struct {
	measure Measure
	dist    pairwise
}

func (e *pairwiseEvaluator) Evaluate(labels []int) (float64, error) {
	op := opSilhouette
	if e.measure == Dunn {
		op = opDunn
	}
	p, err := newPartition(e.dist.n(), labels)
	if err != nil {
		return 0, clusterErrorf(op, err)
	}
	var v float64
	if e.measure == Dunn {
		v, err = dunn(e.dist, p)
	} else {
		v, err = silhouette(e.dist, p)
	}
	if err != nil {
		return 0, clusterErrorf(op, err)
	}

	return v, nil
}
