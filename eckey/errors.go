package eckey

import (
	"errors"
	"fmt"
)

// Input was neither a byte slice nor a string.
var ErrUnsupportedInputType = errors.New("unsupported key input type")

// Text input was neither hex nor PEM armored.
var ErrUnrecognizedEncoding = errors.New("unrecognized key encoding")

// PEM text did not contain an EC PRIVATE KEY or PUBLIC KEY block.
var ErrNoRecognizedPemBlock = errors.New("no EC PRIVATE KEY or PUBLIC KEY block in PEM")

// DER content did not match the expected key container layout. Returned errors are always a [*StructuralMismatch].
var ErrStructuralMismatch = errors.New("DER structure does not match key schema")

// A [Provider] could not be invoked, failed, or returned unexpected output. Returned errors are always a [*ProviderError].
var ErrProviderFailure = errors.New("crypto provider failure")

// Describes where and how DER input failed to match a schema.
type StructuralMismatch struct {
	// dot-joined schema node names, eg "ecPrivateKey.curveParams.curveName"
	Path     string
	Expected string
	Actual   string
}

func (e *StructuralMismatch) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("DER structure mismatch at %s: expected %s", e.Path, e.Expected)
	}
	return fmt.Sprintf("DER structure mismatch at %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

func (e *StructuralMismatch) Is(target error) bool {
	return target == ErrStructuralMismatch
}

type ProviderError struct {
	// provider operation name, eg "generate", "derive-public", "sign"
	Op string
	// captured stderr of an external process, if any
	Stderr string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("crypto provider %s failed", e.Op)
	}
	return fmt.Sprintf("crypto provider %s failed: %s", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderFailure
}

func mismatch(path, expected, actual string) *StructuralMismatch {
	return &StructuralMismatch{Path: path, Expected: expected, Actual: actual}
}
