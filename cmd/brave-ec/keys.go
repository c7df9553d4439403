package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/therealplato/brave-ec/eckey"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// JSON output of the key commands
type keyOutput struct {
	Source string `json:"source,omitempty"`
	eckey.KeyPairRecord
	DIDKey string `json:"didKey,omitempty"`
}

// didKey is left empty when the public point has no did:key form
func newKeyOutput(source string, rec *eckey.KeyPairRecord) *keyOutput {
	did, _ := rec.DIDKey()
	return &keyOutput{Source: source, KeyPairRecord: *rec, DIDKey: did}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format (json, text, pem, jwk)",
		Value:   "json",
	}
}

var cmdGenerate = &cli.Command{
	Name:  "generate",
	Usage: "creates a new P-256 keypair",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "file to write to (must not already exist), or '-' for stdout",
			Value:   stdIOPath,
		},
		formatFlag(),
	},
	Action: runGenerate,
}

func runGenerate(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)
	c, err := configCanonicalizer(cctx, logger)
	if err != nil {
		return err
	}

	ctx, cancel := providerContext(cctx)
	defer cancel()
	rec, err := c.Generate(ctx)
	if err != nil {
		return err
	}

	out, err := getFileOrStdout(cctx.String("output"))
	if err != nil {
		return err
	}
	if err := writeAndClose(out, cctx.String("format"), rec); err != nil {
		return err
	}
	logger.Info("generated keypair", "output", cctx.String("output"))
	return nil
}

var cmdInspect = &cli.Command{
	Name:      "inspect",
	Usage:     "canonicalizes and describes one or more key files (PEM or hex)",
	ArgsUsage: `<file>...`,
	Flags: []cli.Flag{
		formatFlag(),
		&cli.IntFlag{
			Name:  "jobs",
			Usage: "number of files to process concurrently",
			Value: 4,
		},
	},
	Action: runInspect,
}

func runInspect(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)
	c, err := configCanonicalizer(cctx, logger)
	if err != nil {
		return err
	}

	paths := cctx.Args().Slice()
	if len(paths) == 0 {
		paths = []string{stdIOPath}
	}

	ctx, cancel := providerContext(cctx)
	defer cancel()

	records := make([]*eckey.KeyPairRecord, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(cctx.Int("jobs"), 1))
	for i, path := range paths {
		eg.Go(func() error {
			r, err := getFileOrStdin(path)
			if err != nil {
				return err
			}
			defer r.Close()
			rec, err := c.FromReader(ctx, r)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Debug("canonicalized key", "path", path, "private", rec.HasPrivate())
			records[i] = rec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, rec := range records {
		if err := writeRecord(os.Stdout, cctx.String("format"), paths[i], rec); err != nil {
			return err
		}
	}
	return nil
}

var cmdPubkey = &cli.Command{
	Name:      "pubkey",
	Usage:     "outputs the PUBLIC KEY PEM for a private (or public) key file",
	ArgsUsage: `<file>`,
	Action:    runPubkey,
}

func runPubkey(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)
	c, err := configCanonicalizer(cctx, logger)
	if err != nil {
		return err
	}

	path := cctx.Args().First()
	if path == "" {
		path = stdIOPath
	}
	r, err := getFileOrStdin(path)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, cancel := providerContext(cctx)
	defer cancel()
	rec, err := c.FromReader(ctx, r)
	if err != nil {
		return err
	}
	fmt.Print(rec.Pub.PEM)
	return nil
}

func writeAndClose(out io.WriteCloser, format string, rec *eckey.KeyPairRecord) error {
	if err := writeRecord(out, format, "", rec); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

func writeRecord(w io.Writer, format, source string, rec *eckey.KeyPairRecord) error {
	switch format {
	case "", "json":
		b, err := json.MarshalIndent(newKeyOutput(source, rec), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "pem":
		if rec.HasPrivate() {
			_, err := fmt.Fprint(w, rec.Priv.PEM)
			return err
		}
		_, err := fmt.Fprint(w, rec.Pub.PEM)
		return err
	case "jwk":
		point, err := hex.DecodeString(rec.Pub.Hex)
		if err != nil {
			return err
		}
		key, err := eckey.PublicJWK(point)
		if err != nil {
			return err
		}
		b, err := json.Marshal(key)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "text":
		return describeRecord(w, source, rec)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func describeRecord(w io.Writer, source string, rec *eckey.KeyPairRecord) error {
	if source != "" {
		fmt.Fprintf(w, "Source: %s\n", source)
	}
	if rec.HasPrivate() {
		priv, err := hex.DecodeString(rec.Priv.Hex)
		if err != nil {
			return err
		}
		mk, err := eckey.PrivateMultikey(priv)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Type: P-256 / secp256r1 / ES256 private key\n")
		fmt.Fprintf(w, "Private Key (hex): %s\n", rec.Priv.Hex)
		fmt.Fprintf(w, "Private Key (Multibase Syntax): %s\n", mk)
	} else {
		fmt.Fprintf(w, "Type: P-256 / secp256r1 / ES256 public key\n")
	}
	fmt.Fprintf(w, "Public Key (hex): %s\n", rec.Pub.Hex)
	if did, err := rec.DIDKey(); err == nil {
		fmt.Fprintf(w, "Public Key (DID Key Syntax): %s\n", did)
	}
	return nil
}
