// SPDX-License-Identifier: MIT

// Command phonsep runs a permutation cluster-separability sweep described by
// a YAML file and writes the results table as CSV.
//
// Usage:
//
//	phonsep -init -config sweep.yaml   write an example configuration
//	phonsep -config sweep.yaml         run the sweep
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/katalvlaran/phonsep/sweep"
)

func main() {
	configPath := flag.String("config", "sweep.yaml", "sweep configuration file")
	outPath := flag.String("out", "", "results CSV (overrides output.path)")
	initConfig := flag.Bool("init", false, "write an example configuration to -config and exit")
	debug := flag.Bool("debug", false, "human-readable debug logging")
	flag.Parse()

	if *initConfig {
		if err := sweep.ExampleConfig().Save(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "phonsep: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config initialized at: %s\n", *configPath)
		return
	}

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "phonsep: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *outPath); err != nil {
		logger.Error("phonsep failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

// run loads the configuration, sweeps it and writes whatever rows succeeded.
// Failed configurations are reported but only cancellation and I/O errors
// make the command fail.
func run(ctx context.Context, logger *zap.Logger, configPath, outPath string) error {
	cfg, err := sweep.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if outPath != "" {
		cfg.Output.Path = outPath
	}

	rows, err := sweep.Run(ctx, cfg, sweep.WithLogger(logger))
	if errors.Is(err, context.Canceled) {
		return err
	}
	if failed := multierr.Errors(err); len(failed) > 0 {
		logger.Warn("some configurations failed", zap.Int("failed", len(failed)))
	}

	if err := sweep.WriteCSV(cfg.Output.Path, rows, cfg); err != nil {
		return err
	}
	logger.Info("results written",
		zap.String("path", cfg.Output.Path),
		zap.Int("rows", len(rows)))

	return nil
}
