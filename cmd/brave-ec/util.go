package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/therealplato/brave-ec/eckey"
	"github.com/therealplato/brave-ec/eckey/openssl"

	"github.com/urfave/cli/v2"
)

const stdIOPath = "-"

const defaultProviderTimeout = 30 * time.Second

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// text logs to stderr, so command output on stdout stays clean
func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(cctx.String("log-level")),
	}))
	slog.SetDefault(logger)
	return logger
}

func configProvider(cctx *cli.Context, logger *slog.Logger) (eckey.Provider, error) {
	switch strings.ToLower(cctx.String("provider")) {
	case "", "native":
		return &eckey.NativeProvider{}, nil
	case "openssl":
		prov := openssl.NewProvider(cctx.String("openssl-bin"), logger)
		ctx, cancel := providerContext(cctx)
		defer cancel()
		if err := prov.CheckAvailable(ctx); err != nil {
			return nil, fmt.Errorf("openssl provider unusable: %w", err)
		}
		if v, err := prov.Version(ctx); err == nil {
			logger.Debug("using openssl provider", "binary", cctx.String("openssl-bin"), "version", v)
		}
		return prov, nil
	default:
		return nil, fmt.Errorf("unknown crypto provider: %s", cctx.String("provider"))
	}
}

func configCanonicalizer(cctx *cli.Context, logger *slog.Logger) (*eckey.Canonicalizer, error) {
	prov, err := configProvider(cctx, logger)
	if err != nil {
		return nil, err
	}
	return &eckey.Canonicalizer{
		Provider:         prov,
		CompressedPublic: cctx.Bool("compressed"),
		StrictBitString:  cctx.Bool("strict"),
	}, nil
}

// applies the --provider-timeout deadline
func providerContext(cctx *cli.Context) (context.Context, context.CancelFunc) {
	timeout := cctx.Duration("provider-timeout")
	if timeout <= 0 {
		return context.WithCancel(cctx.Context)
	}
	return context.WithTimeout(cctx.Context, timeout)
}

func getFileOrStdin(path string) (io.ReadCloser, error) {
	if path == stdIOPath {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// creates a new file for secret material; existing files are never overwritten
func getFileOrStdout(path string) (io.WriteCloser, error) {
	if path == stdIOPath || path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, err
	}
	return file, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
