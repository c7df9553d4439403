package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

var cmdSign = &cli.Command{
	Name:  "sign",
	Usage: "signs an HTTP request (date, URI and body) with a private key file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "key",
			Aliases:  []string{"k"},
			Usage:    "path to EC PRIVATE KEY PEM file",
			Required: true,
			EnvVars:  []string{"BRAVE_EC_SIGNING_KEY"},
		},
		&cli.StringFlag{
			Name:  "date",
			Usage: "request date header value (defaults to now, in HTTP date format)",
		},
		&cli.StringFlag{
			Name:     "uri",
			Usage:    "request URI (path and query)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "body",
			Usage: "file containing the request body, or '-' for stdin. Empty body if not set",
		},
	},
	Action: runSign,
}

func runSign(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)
	c, err := configCanonicalizer(cctx, logger)
	if err != nil {
		return err
	}

	date := cctx.String("date")
	if date == "" {
		date = time.Now().UTC().Format(http.TimeFormat)
	}

	var body []byte
	if p := cctx.String("body"); p != "" {
		r, err := getFileOrStdin(p)
		if err != nil {
			return err
		}
		defer r.Close()
		body, err = io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("reading request body: %w", err)
		}
	}

	ctx, cancel := providerContext(cctx)
	defer cancel()
	sig, err := c.SignRequest(ctx, cctx.String("key"), date, cctx.String("uri"), body)
	if err != nil {
		return err
	}
	logger.Debug("signed request", "date", date, "uri", cctx.String("uri"), "bodyBytes", len(body))
	fmt.Println(base64.StdEncoding.EncodeToString(sig))
	return nil
}
