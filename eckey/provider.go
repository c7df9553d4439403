package eckey

import (
	"context"
)

// Cryptographic engine used for anything beyond structural parsing.
//
// Implementations may block (eg, running an external process). They must not retry internally; failures should be returned as [*ProviderError].
type Provider interface {
	// Creates a new P-256 keypair, returned as PEM text containing an EC PRIVATE KEY block (and optionally an EC PARAMETERS block).
	GenerateKeypair(ctx context.Context) (string, error)

	// Returns the PUBLIC KEY PEM for the given private key PEM. If compressed is true the public point uses the compressed form.
	DerivePublicPEM(ctx context.Context, privatePEM string, compressed bool) (string, error)

	// Signs payload with ECDSA over SHA-256 using the PEM private key stored at privateKeyFile, returning an ASN.1 DER signature.
	Sign(ctx context.Context, payload []byte, privateKeyFile string) ([]byte, error)
}

// Frames an HTTP request for signing: date, URI and body joined by newlines.
func SigningPayload(date, uri string, body []byte) []byte {
	payload := make([]byte, 0, len(date)+len(uri)+len(body)+2)
	payload = append(payload, date...)
	payload = append(payload, '\n')
	payload = append(payload, uri...)
	payload = append(payload, '\n')
	payload = append(payload, body...)
	return payload
}
