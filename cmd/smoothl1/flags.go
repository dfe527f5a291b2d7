package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/smoothl1/internal/config"
	"github.com/born-ml/smoothl1/internal/logger"
	"github.com/born-ml/smoothl1/internal/parallel"
	"github.com/born-ml/smoothl1/internal/tensor"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	precision string
	workers   int64
	minChunk  int64

	// cfg is the loaded config file, set by setup.
	cfg config.Config
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       config.DefaultPath(),
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json, pretty)",
			Value:       "text",
			Destination: &logFormat,
		},
	}
}

func computeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "precision",
			Aliases:     []string{"p"},
			Usage:       "floating-point precision (float32, float64)",
			Value:       "float32",
			Destination: &precision,
		},
		&cli.Int64Flag{
			Name:        "workers",
			Usage:       "worker goroutines for the loss sweeps (0 = CPU count, 1 = serial)",
			Destination: &workers,
		},
		&cli.Int64Flag{
			Name:        "min-chunk",
			Usage:       "minimum elements per worker",
			Value:       int64(parallel.DefaultConfig().MinChunkSize),
			Destination: &minChunk,
		},
	}
}

// setup loads the config file and installs the logger in the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	loaded, err := config.Load(configPath)
	if err != nil {
		return ctx, err
	}
	cfg = loaded

	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
	log, err := logger.ForFormat(errWriter(cmd), logFormat, logger.ParseLevel(logLevel))
	if err != nil {
		return ctx, err
	}
	if configPath != "" {
		log.Debug("config loaded", "path", configPath)
	}
	return logger.WithContext(ctx, log), nil
}

// computeSettings resolves precision and loop settings from flags and the
// config file.
func computeSettings(cmd *cli.Command) (tensor.DataType, parallel.Config, error) {
	if cfg.Precision != "" && !cmd.IsSet("precision") {
		precision = cfg.Precision
	}
	dtype, err := tensor.ParseDataType(precision)
	if err != nil {
		return 0, parallel.Config{}, err
	}

	pcfg := cfg.Parallel()
	if cmd.IsSet("workers") {
		if workers < 0 {
			return 0, parallel.Config{}, fmt.Errorf("--workers must be >= 0, got %d", workers)
		}
		if workers > 0 {
			pcfg.NumWorkers = int(workers)
			pcfg.Enabled = workers > 1
		}
	}
	if cmd.IsSet("min-chunk") || cfg.MinChunkSize == nil {
		if minChunk < 1 {
			return 0, parallel.Config{}, fmt.Errorf("--min-chunk must be >= 1, got %d", minChunk)
		}
		pcfg.MinChunkSize = int(minChunk)
	}
	return dtype, pcfg, nil
}
