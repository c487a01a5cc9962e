// SPDX-License-Identifier: MIT

// Package cluster implements the clustering-quality statistics used to
// measure how well labels separate observations: the Fisher criterion,
// Davies–Bouldin, Silhouette and Dunn.
//
// Every statistic has the signature (X: N×D, labels: N) → scalar, treating
// the labels as ground-truth clusters. Labels are arbitrary integers; they
// are grouped by distinct value and empty classes never arise.
//
// Two entry points are provided:
//
//   - Lookup(m) returns the plain Statistic function.
//   - Prepare(m, X) returns an Evaluator bound to one observation matrix.
//     Evaluators precompute whatever does not depend on the labels (pairwise
//     distances, total scatter) so that repeated evaluation under shuffled
//     labels is cheap. They are safe for concurrent use.
//
// Direction: Fisher, Silhouette and Dunn are higher-is-better; Davies–Bouldin
// is lower-is-better.
package cluster

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/phonsep/matrix"
)

// Sentinel errors.
var (
	// ErrUnknownMeasure indicates an unrecognised statistic selector.
	ErrUnknownMeasure = errors.New("cluster: unknown measure")

	// ErrLabelMismatch indicates len(labels) != X.Rows().
	ErrLabelMismatch = errors.New("cluster: label count does not match observations")

	// ErrTooFewClusters indicates fewer than two distinct labels.
	ErrTooFewClusters = errors.New("cluster: need at least two clusters")

	// ErrTooManyClusters indicates a Silhouette request with as many
	// clusters as observations.
	ErrTooManyClusters = errors.New("cluster: number of clusters must be below the number of observations")

	// ErrDegenerateClusters indicates every cluster has zero diameter (Dunn).
	ErrDegenerateClusters = errors.New("cluster: all clusters have zero diameter")

	// ErrSingularScatter indicates a singular within-class scatter matrix
	// (Fisher). It wraps matrix.ErrSingular.
	ErrSingularScatter = errors.New("cluster: within-class scatter is singular")
)

// Measure selects a clustering statistic.
type Measure int

// Measures.
const (
	Fisher Measure = iota + 1
	DaviesBouldin
	Silhouette
	Dunn
)

var measureNames = map[Measure]string{
	Fisher:        "fisher",
	DaviesBouldin: "davies_bouldin",
	Silhouette:    "silhouette",
	Dunn:          "dunn",
}

// AllMeasures returns every measure in declaration order.
func AllMeasures() []Measure { return []Measure{Fisher, DaviesBouldin, Silhouette, Dunn} }

// ParseMeasure maps "fisher", "davies_bouldin", "silhouette" or "dunn" to a Measure.
func ParseMeasure(s string) (Measure, error) {
	for _, m := range AllMeasures() {
		if measureNames[m] == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMeasure, s)
}

// Valid reports whether m is a known measure.
func (m Measure) Valid() bool {
	_, ok := measureNames[m]

	return ok
}

// String returns the measure name.
func (m Measure) String() string {
	if s, ok := measureNames[m]; ok {
		return s
	}

	return fmt.Sprintf("Measure(%d)", int(m))
}

// Direction tells which way a statistic improves.
type Direction int

const (
	// HigherIsBetter statistics grow with separation.
	HigherIsBetter Direction = iota
	// LowerIsBetter statistics shrink with separation.
	LowerIsBetter
)

// String names the direction.
func (d Direction) String() string {
	if d == LowerIsBetter {
		return "lower_is_better"
	}

	return "higher_is_better"
}

// Direction returns the improvement direction of m.
func (m Measure) Direction() Direction {
	if m == DaviesBouldin {
		return LowerIsBetter
	}

	return HigherIsBetter
}

// Statistic computes a clustering statistic of X under labels.
type Statistic func(X *matrix.Dense, labels []int) (float64, error)

// Lookup returns the Statistic implementing m.
func Lookup(m Measure) (Statistic, error) {
	switch m {
	case Fisher:
		return FisherCriterion, nil
	case DaviesBouldin:
		return DaviesBouldinIndex, nil
	case Silhouette:
		return SilhouetteScore, nil
	case Dunn:
		return DunnIndex, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownMeasure, m)
}

// clusterErrorf tags err with the statistic name.
func clusterErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
