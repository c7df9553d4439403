package main

import (
	"log/slog"
	"os"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "brave-ec",
		Usage:   "P-256 (prime256v1) key canonicalization tool",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			EnvVars: []string{"BRAVE_EC_LOG_LEVEL", "GO_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "provider",
			Usage:   "crypto provider for key generation, public key derivation and signing (native, openssl)",
			Value:   "native",
			EnvVars: []string{"BRAVE_EC_PROVIDER"},
		},
		&cli.StringFlag{
			Name:    "openssl-bin",
			Usage:   "path to the openssl binary, when using the openssl provider",
			Value:   "openssl",
			EnvVars: []string{"BRAVE_EC_OPENSSL_BIN"},
		},
		&cli.BoolFlag{
			Name:    "compressed",
			Usage:   "derive public keys with a compressed point",
			EnvVars: []string{"BRAVE_EC_COMPRESSED"},
		},
		&cli.BoolFlag{
			Name:    "strict",
			Usage:   "reject public keys with a nonzero BIT STRING unused-bits count",
			EnvVars: []string{"BRAVE_EC_STRICT"},
		},
		&cli.DurationFlag{
			Name:    "provider-timeout",
			Usage:   "deadline for each crypto provider operation",
			Value:   defaultProviderTimeout,
			EnvVars: []string{"BRAVE_EC_PROVIDER_TIMEOUT"},
		},
	}

	app.Commands = []*cli.Command{
		cmdGenerate,
		cmdInspect,
		cmdPubkey,
		cmdSign,
		cmdServe,
	}

	return app.Run(args)
}
