package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/therealplato/brave-ec/pkg/metrics"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var cmdServe = &cli.Command{
	Name:  "serve",
	Usage: "run the key canonicalization HTTP service",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "bind",
			Usage:   "Specify the local IP/port to bind to",
			Value:   ":6680",
			EnvVars: []string{"BRAVE_EC_BIND"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs (empty to disable)",
			Value:   ":3989",
			EnvVars: []string{"BRAVE_EC_METRICS_LISTEN"},
		},
	},
	Action: runServe,
}

func runServe(cctx *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cctx.String("log-level")),
	}))
	slog.SetDefault(logger)

	shutdownTracing, err := configOTEL(cctx.Context, "brave-ec")
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down trace exporter", "err", err)
		}
	}()

	c, err := configCanonicalizer(cctx, logger)
	if err != nil {
		return err
	}

	srv, err := NewServer(Config{
		Logger:          logger,
		Canonicalizer:   c,
		ProviderTimeout: cctx.Duration("provider-timeout"),
		Bind:            cctx.String("bind"),
	})
	if err != nil {
		return fmt.Errorf("failed to construct server: %v", err)
	}

	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// prometheus HTTP endpoint: /metrics
		return metrics.RunServer(ctx, cancel, cctx.String("metrics-listen"))
	})
	eg.Go(func() error {
		defer cancel()
		return srv.RunAPI(ctx)
	})
	return eg.Wait()
}
