package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/urfave/cli/v3"

	"github.com/born-ml/smoothl1/internal/api"
	"github.com/born-ml/smoothl1/internal/logger"
	"github.com/born-ml/smoothl1/internal/lossio"
	"github.com/born-ml/smoothl1/internal/nn"
)

func serveCmd() *cli.Command {
	var (
		addr         string
		readTimeout  time.Duration
		maxBodyBytes int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the loss over HTTP",
		Flags: append(computeFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "max-body",
				Usage:       "maximum request body size in bytes",
				Value:       api.DefaultMaxBodyBytes,
				Destination: &maxBodyBytes,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, &addr, &readTimeout, &maxBodyBytes)

			dtype, pcfg, err := computeSettings(cmd)
			if err != nil {
				return err
			}

			ev := lossio.NewEvaluator(dtype, nn.WithParallel(pcfg), nn.WithLogger(log))
			server := api.NewServer(ev, nn.DefaultRegistry[float32]().Types(), log, maxBodyBytes)
			e := api.NewEcho(server)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("starting server", "address", addr, "precision", dtype.String(), "workers", pcfg.NumWorkers)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}

// applyServeConfig applies config file values to serve flags that were not
// set explicitly.
func applyServeConfig(cmd *cli.Command, addr *string, readTimeout *time.Duration, maxBodyBytes *int64) {
	if cfg.ServerAddress != "" && !cmd.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.ReadTimeout != nil && !cmd.IsSet("read-timeout") {
		*readTimeout = *cfg.ReadTimeout
	}
	if cfg.MaxBodyBytes != nil && !cmd.IsSet("max-body") {
		*maxBodyBytes = *cfg.MaxBodyBytes
	}
}
