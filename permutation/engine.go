// SPDX-License-Identifier: MIT

package permutation

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/phonsep/activation"
	"github.com/katalvlaran/phonsep/cluster"
	"github.com/katalvlaran/phonsep/matrix"
	"github.com/katalvlaran/phonsep/pca"
	"github.com/katalvlaran/phonsep/phonetics"
	"github.com/katalvlaran/phonsep/report"
)

// Outcome is what Run returns.
type Outcome struct {
	Result report.ClusteringResult
	// Null holds the permuted statistics in permutation order; nil when no
	// permutations were configured.
	Null []float64
	// Samples is the number of observations left after filtering.
	Samples int
	// Classes is the number of distinct classes among them.
	Classes int
}

// Run computes the chosen statistic for samples under labelling and, when
// WithPermutations is given, its permutation p-value.
//
// Implementation:
//   - Stage 1: validate options; nothing is computed on a bad configuration.
//   - Stage 2: drop rows whose phone has no class, keeping rows and labels paired.
//   - Stage 3: optionally fit PCA on the remaining rows (labels unused).
//   - Stage 4: prepare the statistic once and evaluate the true labels.
//   - Stage 5: evaluate P shuffles on a worker pool and rank the observed value.
//
// Errors:
//   - cluster.ErrUnknownMeasure, ErrBadPCADims, ErrBadPermutations,
//     ErrBadWorkers, ErrNilLabelling (configuration).
//   - matrix.ErrNilMatrix, cluster.ErrLabelMismatch for malformed samples.
//   - ErrNoSamples when the labelling covers no row.
//   - pca.ErrBadDims, pca.ErrFitFailed from the reduction.
//   - any cluster error from the observed or a permuted statistic.
//   - ctx.Err() when ctx is cancelled during the null stage.
func Run(ctx context.Context, samples activation.Samples, labelling phonetics.Labelling, opts ...Option) (*Outcome, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if labelling == nil {
		return nil, ErrNilLabelling
	}
	if samples.Activations == nil {
		return nil, fmt.Errorf("permutation: %w", matrix.ErrNilMatrix)
	}
	if samples.Activations.Rows() != len(samples.Labels) {
		return nil, fmt.Errorf("permutation: %d rows, %d labels: %w",
			samples.Activations.Rows(), len(samples.Labels), cluster.ErrLabelMismatch)
	}
	log := o.logger.With(zap.String("measure", o.measure.String()))

	X, labels, err := filter(samples, labelling)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Samples: len(labels), Classes: countClasses(labels)}
	res := report.ClusteringResult{Measure: o.measure}
	log.Info("filtered samples",
		zap.Int("samples", out.Samples),
		zap.Int("classes", out.Classes),
		zap.Int("nodes", X.Cols()))

	if o.pcaSet {
		proj, err := pca.Fit(X, o.pcaDims)
		if err != nil {
			return nil, fmt.Errorf("permutation: %w", err)
		}
		X = proj.Reduced
		res.PCA = true
		res.PCADims = o.pcaDims
		res.PCAExplainedVariance = proj.TotalExplainedVariance()
		log.Info("applied PCA",
			zap.Int("dims", o.pcaDims),
			zap.Float64("explainedVariance", res.PCAExplainedVariance),
			zap.Float64s("ratios", proj.ExplainedVarianceRatio))
	}

	ev, err := cluster.Prepare(o.measure, X, cluster.WithDistanceCacheLimit(o.distanceCacheLimit))
	if err != nil {
		return nil, fmt.Errorf("permutation: %w", err)
	}
	observed, err := ev.Evaluate(labels)
	if err != nil {
		return nil, fmt.Errorf("permutation: observed statistic: %w", err)
	}
	res.Value = observed
	log.Info("observed statistic", zap.Float64("value", observed))

	if !o.permutationsSet {
		out.Result = res
		return out, nil
	}

	null, err := nullDistribution(ctx, ev, labels, &o)
	if err != nil {
		return nil, err
	}
	p, fell := PValue(null, observed, o.measure.Direction())
	res.Permutations = o.permutations
	res.PValue = p
	res.PValueComputed = true
	res.FellOffEnd = fell
	log.Info("p-value",
		zap.Int("permutations", o.permutations),
		zap.Float64("p", p))
	if fell {
		log.Warn("observed statistic lies beyond the null distribution",
			zap.Float64("value", observed),
			zap.String("direction", o.measure.Direction().String()),
			zap.String("report", res.PString(6)))
	}

	out.Result = res
	out.Null = null

	return out, nil
}

// filter keeps the rows whose phone has a class under labelling.
func filter(samples activation.Samples, labelling phonetics.Labelling) (*matrix.Dense, []int, error) {
	idx := make([]int, 0, len(samples.Labels))
	labels := make([]int, 0, len(samples.Labels))
	for i, ph := range samples.Labels {
		if class, ok := labelling(ph); ok {
			idx = append(idx, i)
			labels = append(labels, class)
		}
	}
	if len(idx) == 0 {
		return nil, nil, ErrNoSamples
	}
	X, err := samples.Activations.SelectRows(idx)
	if err != nil {
		return nil, nil, fmt.Errorf("permutation: %w", err)
	}

	return X, labels, nil
}

func countClasses(labels []int) int {
	seen := make(map[int]struct{})
	for _, l := range labels {
		seen[l] = struct{}{}
	}

	return len(seen)
}

// nullDistribution evaluates o.permutations shuffles of labels. Worker w owns
// a private label buffer; results land at their permutation index.
func nullDistribution(ctx context.Context, ev cluster.Evaluator, labels []int, o *options) ([]float64, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	null := make([]float64, o.permutations)
	workers := min(o.workers, o.permutations)
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scratch := make([]int, len(labels))
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				copy(scratch, labels)
				Shuffle(permutationRNG(o.seed, i), scratch)
				v, err := ev.Evaluate(scratch)
				if err != nil {
					fail(fmt.Errorf("permutation: permutation %d: %w", i, err))
					continue
				}
				null[i] = v
			}
		}()
	}

dispatch:
	for i := 0; i < o.permutations; i++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return null, nil
}
