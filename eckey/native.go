package eckey

import (
	"context"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"os"

	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// Implements [Provider] with the golang stdlib crypto packages. Output matches the layout of the openssl command line tool: generated keys are an EC PARAMETERS block followed by an EC PRIVATE KEY block, and signatures are ASN.1 DER.
type NativeProvider struct{}

var _ Provider = (*NativeProvider)(nil)

func (p *NativeProvider) GenerateKeypair(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ProviderError{Op: opGenerate, Err: err}
	}
	sk, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return "", &ProviderError{Op: opGenerate, Err: fmt.Errorf("P-256/secp256r1 key generation failed: %w", err)}
	}
	der, err := marshalSEC1(sk.Bytes(), sk.PublicKey().Bytes())
	if err != nil {
		return "", &ProviderError{Op: opGenerate, Err: err}
	}
	return armorBytes(BlockECParameters, curveParameters()) + armorBytes(BlockECPrivateKey, der), nil
}

func (p *NativeProvider) DerivePublicPEM(ctx context.Context, privatePEM string, compressed bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ProviderError{Op: opDerivePublic, Err: err}
	}
	mat, err := ParsePrivate(privatePEM)
	if err != nil {
		return "", &ProviderError{Op: opDerivePublic, Err: err}
	}
	scalar, err := padScalar(mat.PrivKey)
	if err != nil {
		return "", &ProviderError{Op: opDerivePublic, Err: err}
	}
	sk, err := ecdh.P256().NewPrivateKey(scalar)
	if err != nil {
		return "", &ProviderError{Op: opDerivePublic, Err: fmt.Errorf("invalid P-256/secp256r1 private key: %w", err)}
	}
	point := sk.PublicKey().Bytes()
	if compressed {
		point, err = CompressPoint(point)
		if err != nil {
			return "", &ProviderError{Op: opDerivePublic, Err: err}
		}
	}
	der, err := marshalSPKI(point)
	if err != nil {
		return "", &ProviderError{Op: opDerivePublic, Err: err}
	}
	return armorBytes(BlockPublicKey, der), nil
}

func (p *NativeProvider) Sign(ctx context.Context, payload []byte, privateKeyFile string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ProviderError{Op: opSign, Err: err}
	}
	text, err := os.ReadFile(privateKeyFile)
	if err != nil {
		return nil, &ProviderError{Op: opSign, Err: err}
	}
	n, err := NormalizeInput(string(text))
	if err != nil {
		return nil, &ProviderError{Op: opSign, Err: err}
	}
	if _, err := Validate(n.DER, PrivateKeySchema); err != nil {
		return nil, &ProviderError{Op: opSign, Err: err}
	}
	sk, err := x509.ParseECPrivateKey(n.DER)
	if err != nil {
		return nil, &ProviderError{Op: opSign, Err: fmt.Errorf("invalid P-256/secp256r1 private key: %w", err)}
	}
	hash := sha256.Sum256(payload)
	sig, err := ecdsa.SignASN1(rand.Reader, sk, hash[:])
	if err != nil {
		return nil, &ProviderError{Op: opSign, Err: fmt.Errorf("crypto error signing with P-256/secp256r1 private key: %w", err)}
	}
	return sig, nil
}

// DER of the named curve OID, the content of an EC PARAMETERS block
func curveParameters() []byte {
	var b cryptobyte.Builder
	b.AddASN1ObjectIdentifier(OIDNamedCurveP256)
	return b.BytesOrPanic()
}

// SEC1 ECPrivateKey, version 1, with named curve and public key
func marshalSEC1(scalar, point []byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(casn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(1)
		b.AddASN1OctetString(scalar)
		b.AddASN1(casn1.Tag(0).ContextSpecific().Constructed(), func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(OIDNamedCurveP256)
		})
		b.AddASN1(casn1.Tag(1).ContextSpecific().Constructed(), func(b *cryptobyte.Builder) {
			b.AddASN1BitString(point)
		})
	})
	return b.Bytes()
}

// SubjectPublicKeyInfo for an id-ecPublicKey on P-256
func marshalSPKI(point []byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(casn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(casn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(OIDECPublicKey)
			b.AddASN1ObjectIdentifier(OIDNamedCurveP256)
		})
		b.AddASN1BitString(point)
	})
	return b.Bytes()
}
