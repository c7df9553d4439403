package eckey

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"
)

// How a key input was encoded.
type EncodingKind uint8

const (
	EncodingRaw EncodingKind = iota + 1
	EncodingHex
	EncodingPEM
)

func (k EncodingKind) String() string {
	switch k {
	case EncodingRaw:
		return "raw"
	case EncodingHex:
		return "hex"
	case EncodingPEM:
		return "pem"
	default:
		return "unknown"
	}
}

// Result of normalizing a key input to DER bytes.
type NormalizedInput struct {
	Encoding EncodingKind
	// only set for EncodingPEM
	Block BlockKind
	DER   []byte
}

var (
	rxPemHeader = regexp.MustCompile(`-----BEGIN [^\r\n]+?-----`)
	rxHex       = regexp.MustCompile(`^[0-9a-fA-F]*$`)
)

// Converts a key input to DER bytes. See [NormalizeInput].
func Normalize(input any) ([]byte, error) {
	n, err := NormalizeInput(input)
	if err != nil {
		return nil, err
	}
	return n.DER, nil
}

// Classifies and decodes a key input.
//
// A []byte is treated as raw DER and copied. A string containing a PEM header is treated as PEM (checked first), otherwise an even-length string of hex characters is decoded as hex. The empty string is (empty) hex. Anything else fails with [ErrUnrecognizedEncoding] or [ErrUnsupportedInputType].
func NormalizeInput(input any) (*NormalizedInput, error) {
	switch v := input.(type) {
	case []byte:
		return &NormalizedInput{Encoding: EncodingRaw, DER: clone(v)}, nil
	case string:
		return normalizeText(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInputType, input)
	}
}

func normalizeText(s string) (*NormalizedInput, error) {
	if rxPemHeader.MatchString(s) {
		kind, body, err := FindArmor(s)
		if err != nil {
			return nil, err
		}
		der, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64 in %s block: %w", ErrUnrecognizedEncoding, kind, err)
		}
		return &NormalizedInput{Encoding: EncodingPEM, Block: kind, DER: der}, nil
	}
	if len(s)%2 == 0 && rxHex.MatchString(s) {
		der, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnrecognizedEncoding, err)
		}
		return &NormalizedInput{Encoding: EncodingHex, DER: der}, nil
	}
	return nil, ErrUnrecognizedEncoding
}
