// SPDX-License-Identifier: MIT

// Package sweep runs the permutation test over every combination of system,
// layer, labelling and measure named in a Config and collects the results
// as report rows.
//
// A failing combination is logged, recorded and skipped; the sweep carries
// on with the next one. Run returns the rows that succeeded together with
// every failure combined by multierr. Only cancellation of the context stops
// a sweep early.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/katalvlaran/phonsep/activation"
	"github.com/katalvlaran/phonsep/permutation"
	"github.com/katalvlaran/phonsep/report"
)

// Option configures Run.
type Option func(*options)

type options struct {
	logger    *zap.Logger
	runID     string
	newSource func(SystemConfig) Source
}

func defaultOptions() options {
	return options{
		logger:    zap.NewNop(),
		newSource: func(s SystemConfig) Source { return NewFileSource(s) },
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithRunID fixes the run identifier stamped on every row. By default a
// random UUID is generated per Run.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithSources replaces the file-backed sources, e.g. with in-memory data.
func WithSources(fn func(SystemConfig) Source) Option {
	return func(o *options) { o.newSource = fn }
}

// Run executes the sweep described by cfg. Zero-valued system fields of cfg
// are filled with their defaults first.
//
// Errors:
//   - ErrInvalidConfig (possibly several, combined) before anything runs.
//   - ctx.Err() if the context is cancelled; rows finished so far are returned.
//   - otherwise the multierr combination of every failed configuration,
//     alongside the rows of those that succeeded.
func Run(ctx context.Context, cfg *Config, opts ...Option) ([]report.Row, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	cfg.applyDefaults()
	p, err := cfg.plan()
	if err != nil {
		return nil, err
	}

	log := o.logger.With(zap.String("runId", o.runID))
	log.Info("sweep started",
		zap.Int("systems", len(p.systems)),
		zap.Int("labellings", len(p.labellings)),
		zap.Int("measures", len(p.measures)))

	var (
		rows     []report.Row
		failures error
	)
	fail := func(l *zap.Logger, msg string, err error) {
		l.Error(msg, zap.Error(err))
		failures = multierr.Append(failures, err)
	}

	for _, sys := range p.systems {
		sysLog := log.With(zap.String("system", sys.Name))
		sysLog.Info("system started", zap.Int("layers", len(sys.layers)))

		src := o.newSource(sys.SystemConfig)
		set, err := src.Segmentation()
		if err != nil {
			fail(sysLog, "segmentation failed", fmt.Errorf("system %s: %w", sys.Name, err))
			continue
		}

		var aggOpts []activation.AggregateOption
		if sys.IgnoreExtraWords {
			aggOpts = append(aggOpts, activation.WithIgnoreExtraWords())
		}

		for _, layer := range sys.layers {
			layerLog := sysLog.With(zap.String("layer", layer.Name()))
			layers, err := src.Layer(layer)
			if err != nil {
				fail(layerLog, "activations failed", fmt.Errorf("system %s layer %s: %w", sys.Name, layer, err))
				continue
			}
			view, err := activation.Aggregate(set, layers, aggOpts...)
			if err != nil {
				fail(layerLog, "aggregation failed", fmt.Errorf("system %s layer %s: %w", sys.Name, layer, err))
				continue
			}

			for _, lab := range p.labellings {
				for _, m := range p.measures {
					if err := ctx.Err(); err != nil {
						log.Warn("sweep cancelled", zap.Int("rows", len(rows)))
						return rows, err
					}
					confLog := layerLog.With(zap.String("labelling", lab.name))
					out, err := permutation.Run(ctx, view.PerOccurrence, lab.fn,
						append(cfg.permutationOptions(), permutation.WithMeasure(m), permutation.WithLogger(confLog))...)
					if err != nil {
						if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
							log.Warn("sweep cancelled", zap.Int("rows", len(rows)))
							return rows, ctxErr
						}
						fail(confLog, "configuration failed", fmt.Errorf("system %s layer %s labelling %s measure %s: %w",
							sys.Name, layer, lab.name, m, err))
						continue
					}
					rows = append(rows, report.Row{
						RunID:     o.runID,
						System:    sys.Name,
						Layer:     layer,
						Labelling: lab.name,
						Result:    out.Result,
					})
				}
			}
		}
	}

	log.Info("sweep finished",
		zap.Int("rows", len(rows)),
		zap.Int("failures", len(multierr.Errors(failures))))

	return rows, failures
}

func (c *Config) permutationOptions() []permutation.Option {
	opts := []permutation.Option{
		permutation.WithSeed(c.Seed),
		permutation.WithDistanceCacheLimit(c.DistanceCacheLimit),
	}
	if c.Workers > 0 {
		opts = append(opts, permutation.WithWorkers(c.Workers))
	}
	if c.PCADims != nil {
		opts = append(opts, permutation.WithPCA(*c.PCADims))
	}
	if c.Permutations != nil {
		opts = append(opts, permutation.WithPermutations(*c.Permutations))
	}

	return opts
}

// WriteCSV writes rows to path using the output section of cfg.
func WriteCSV(path string, rows []report.Row, cfg *Config) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	w := report.NewCSVWriter(f, cfg.CSVConfig())
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}

	return w.Flush()
}
