package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/smoothl1/internal/nn"
	"github.com/born-ml/smoothl1/internal/version"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := version.Resolve()
			w := outWriter(cmd)
			fmt.Fprintf(w, "version:    %s\n", info.Version)
			if info.Commit != "" {
				fmt.Fprintf(w, "commit:     %s\n", info.Commit)
			}
			if info.GoVersion != "" {
				fmt.Fprintf(w, "go:         %s\n", info.GoVersion)
			}
			return nil
		},
	}
}

func layersCmd() *cli.Command {
	return &cli.Command{
		Name:  "layers",
		Usage: "List registered layer types",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := outWriter(cmd)
			for _, name := range nn.DefaultRegistry[float32]().Types() {
				fmt.Fprintln(w, name)
			}
			return nil
		},
	}
}
