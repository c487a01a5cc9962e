// SPDX-License-Identifier: MIT

package permutation

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/phonsep/cluster"
)

// DefaultSeed seeds the permutation generators when WithSeed is not given.
const DefaultSeed uint64 = 1

var (
	// ErrBadPCADims indicates a PCA target dimension below 1.
	ErrBadPCADims = errors.New("permutation: PCA dimension must be at least 1")

	// ErrBadPermutations indicates a configured permutation count below 1.
	ErrBadPermutations = errors.New("permutation: permutation count must be at least 1")

	// ErrBadWorkers indicates a worker count below 1.
	ErrBadWorkers = errors.New("permutation: worker count must be at least 1")

	// ErrNoSamples indicates that no observation survived the labelling filter.
	ErrNoSamples = errors.New("permutation: no labelled samples")

	// ErrNilLabelling indicates a nil labelling function.
	ErrNilLabelling = errors.New("permutation: nil labelling")
)

// Option configures Run.
type Option func(*options)

type options struct {
	measure            cluster.Measure
	pcaDims            int
	pcaSet             bool
	permutations       int
	permutationsSet    bool
	seed               uint64
	workers            int
	distanceCacheLimit int
	logger             *zap.Logger
}

func defaultOptions() options {
	return options{
		measure:            cluster.Fisher,
		seed:               DefaultSeed,
		workers:            runtime.GOMAXPROCS(0),
		distanceCacheLimit: cluster.DefaultDistanceCacheLimit,
		logger:             zap.NewNop(),
	}
}

// WithMeasure selects the clustering statistic. Default: cluster.Fisher.
func WithMeasure(m cluster.Measure) Option {
	return func(o *options) { o.measure = m }
}

// WithPCA reduces the filtered activations to dims principal components
// before any statistic is computed. Without it no reduction is applied.
func WithPCA(dims int) Option {
	return func(o *options) {
		o.pcaDims = dims
		o.pcaSet = true
	}
}

// WithPermutations builds a null distribution of n shuffles and derives a
// p-value from it. Without it only the observed statistic is reported.
func WithPermutations(n int) Option {
	return func(o *options) {
		o.permutations = n
		o.permutationsSet = true
	}
}

// WithSeed sets the seed of the per-permutation generators.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithWorkers sets the number of goroutines evaluating permutations.
// Default: runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithDistanceCacheLimit is passed to cluster.Prepare.
func WithDistanceCacheLimit(n int) Option {
	return func(o *options) { o.distanceCacheLimit = n }
}

// WithLogger routes progress messages to l. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

func (o *options) validate() error {
	if !o.measure.Valid() {
		return fmt.Errorf("%w: %s", cluster.ErrUnknownMeasure, o.measure)
	}
	if o.pcaSet && o.pcaDims < 1 {
		return fmt.Errorf("%w: got %d", ErrBadPCADims, o.pcaDims)
	}
	if o.permutationsSet && o.permutations < 1 {
		return fmt.Errorf("%w: got %d", ErrBadPermutations, o.permutations)
	}
	if o.workers < 1 {
		return fmt.Errorf("%w: got %d", ErrBadWorkers, o.workers)
	}

	return nil
}
