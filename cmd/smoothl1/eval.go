package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/smoothl1/internal/logger"
	"github.com/born-ml/smoothl1/internal/lossio"
	"github.com/born-ml/smoothl1/internal/nn"
)

func evalCmd() *cli.Command {
	var (
		inputPath  string
		outputPath string
		pretty     bool
	)

	return &cli.Command{
		Name:      "eval",
		Usage:     "Compute the per-item smooth L1 loss of a JSON request",
		ArgsUsage: "[request.json]",
		Flags: append(computeFlags(),
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "request file (- for stdin)",
				Value:       "-",
				Destination: &inputPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "result file (default stdout)",
				Destination: &outputPath,
			},
			&cli.BoolFlag{
				Name:        "pretty",
				Usage:       "indent the JSON result",
				Destination: &pretty,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			if cmd.Args().Len() > 0 && !cmd.IsSet("input") {
				inputPath = cmd.Args().First()
			}

			dtype, pcfg, err := computeSettings(cmd)
			if err != nil {
				return err
			}

			req, err := readRequest(cmd, inputPath)
			if err != nil {
				return err
			}

			ev := lossio.NewEvaluator(dtype, nn.WithParallel(pcfg), nn.WithLogger(log))
			res, err := ev.Evaluate(ctx, req)
			if err != nil {
				return err
			}
			log.Debug("evaluated", "id", res.ID, "items", len(res.Loss), "precision", res.Precision)

			return writeResult(cmd, outputPath, res, pretty)
		},
	}
}

func readRequest(cmd *cli.Command, path string) (*lossio.Request, error) {
	var r io.Reader
	if path == "-" || path == "" {
		r = cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open request: %w", err)
		}
		defer f.Close()
		r = f
	}
	return lossio.DecodeRequest(r)
}

func writeResult(cmd *cli.Command, path string, res *lossio.Result, pretty bool) error {
	if path == "" || path == "-" {
		return lossio.EncodeResult(outWriter(cmd), res, pretty)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	if err := lossio.EncodeResult(f, res, pretty); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
