// SPDX-License-Identifier: MIT

// Package report holds the records produced by one permutation test and a
// CSV writer that tabulates them across a sweep.
//
// A ClusteringResult carries the observed statistic, its PCA context and,
// when a null distribution was built, the empirical p-value. A p-value whose
// observed statistic lay beyond every permuted value is never shown as a
// precise number: PString renders it as the bound "< 1/P".
package report

import (
	"strconv"

	"github.com/katalvlaran/phonsep/activation"
	"github.com/katalvlaran/phonsep/cluster"
)

// ClusteringResult is the outcome of one (layer, labelling, measure) run.
type ClusteringResult struct {
	Measure cluster.Measure
	Value   float64

	// PCA reports whether the activations were reduced before testing.
	// PCADims and PCAExplainedVariance are meaningful only when PCA is set.
	PCA                  bool
	PCADims              int
	PCAExplainedVariance float64

	// Permutations is the size of the null distribution; zero when no
	// p-value was computed.
	Permutations   int
	PValue         float64
	PValueComputed bool

	// FellOffEnd marks an observed value more extreme than the whole null
	// distribution. PValue is then only an upper bound (see PUpperBound).
	FellOffEnd bool
}

// PUpperBound returns 1/P, the resolution limit of the empirical p-value,
// or 0 when no permutations were run.
func (r ClusteringResult) PUpperBound() float64 {
	if r.Permutations <= 0 {
		return 0
	}

	return 1 / float64(r.Permutations)
}

// PString renders the p-value with prec decimals, "< 1/P" when the observed
// value fell off the end, or "" when no p-value was computed.
func (r ClusteringResult) PString(prec int) string {
	switch {
	case !r.PValueComputed:
		return ""
	case r.FellOffEnd:
		return "< " + strconv.FormatFloat(r.PUpperBound(), 'f', prec, 64)
	default:
		return strconv.FormatFloat(r.PValue, 'f', prec, 64)
	}
}

// Row is one line of a sweep's results table.
type Row struct {
	RunID     string
	System    string
	Layer     activation.Layer
	Labelling string
	Result    ClusteringResult
}
