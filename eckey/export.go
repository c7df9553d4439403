package eckey

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-varint"
)

const (
	// multicodec p256-pub
	multicodecP256Pub = 0x1200
	// multicodec p256-priv
	multicodecP256Priv = 0x1306
)

// Encoding of an EC public point.
type PointCompression uint8

const (
	PointInvalid PointCompression = iota
	PointUncompressed
	PointCompressed
)

func (p PointCompression) String() string {
	switch p {
	case PointUncompressed:
		return "uncompressed"
	case PointCompressed:
		return "compressed"
	default:
		return "invalid"
	}
}

// Classifies a P-256 point by its SEC1 prefix byte and length. This does not check that the point is on the curve.
func PointFormat(point []byte) PointCompression {
	switch {
	case len(point) == 65 && point[0] == 0x04:
		return PointUncompressed
	case len(point) == 33 && (point[0] == 0x02 || point[0] == 0x03):
		return PointCompressed
	default:
		return PointInvalid
	}
}

// Returns the compressed (33 byte) form of a P-256 point. Compressed input is returned as a copy.
func CompressPoint(point []byte) ([]byte, error) {
	switch PointFormat(point) {
	case PointCompressed:
		return clone(point), nil
	case PointUncompressed:
		out := make([]byte, 33)
		// prefix encodes the parity of Y
		out[0] = 0x02 | (point[64] & 0x01)
		copy(out[1:], point[1:33])
		return out, nil
	default:
		return nil, fmt.Errorf("not a P-256 point encoding (len=%d)", len(point))
	}
}

// did:key string encoding of a P-256 public point:
//
//   - compressed binary representation
//   - prefix with p256-pub multicodec varint bytes
//   - multibase base58btc ("z" prefix)
//   - add "did:key:" prefix
func DIDKey(point []byte) (string, error) {
	comp, err := CompressPoint(point)
	if err != nil {
		return "", err
	}
	kstr, err := multibase.Encode(multibase.Base58BTC, append(varint.ToUvarint(multicodecP256Pub), comp...))
	if err != nil {
		return "", err
	}
	return "did:key:" + kstr, nil
}

// Multikey (multibase, with p256-priv multicodec) string encoding of a private scalar. Scalars shorter than 32 bytes are left-padded.
func PrivateMultikey(scalar []byte) (string, error) {
	padded, err := padScalar(scalar)
	if err != nil {
		return "", err
	}
	return multibase.Encode(multibase.Base58BTC, append(varint.ToUvarint(multicodecP256Priv), padded...))
}

// JSON Web Key for a P-256 public point. The key ID is the base64url SHA-256 JWK thumbprint.
func PublicJWK(point []byte) (jwk.Key, error) {
	curve := elliptic.P256()
	var x, y *big.Int
	switch PointFormat(point) {
	case PointUncompressed:
		x = new(big.Int).SetBytes(point[1:33])
		y = new(big.Int).SetBytes(point[33:65])
	case PointCompressed:
		x, y = elliptic.UnmarshalCompressed(curve, point)
		if x == nil {
			return nil, fmt.Errorf("invalid compressed P-256 point")
		}
	default:
		return nil, fmt.Errorf("not a P-256 point encoding (len=%d)", len(point))
	}
	key, err := jwk.FromRaw(&ecdsa.PublicKey{Curve: curve, X: x, Y: y})
	if err != nil {
		return nil, fmt.Errorf("building JWK: %w", err)
	}
	thumb, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("computing JWK thumbprint: %w", err)
	}
	if err := key.Set(jwk.KeyIDKey, base64.RawURLEncoding.EncodeToString(thumb)); err != nil {
		return nil, err
	}
	return key, nil
}

// did:key for the public half of the record.
func (r *KeyPairRecord) DIDKey() (string, error) {
	point, err := decodeHexPoint(r.Pub.Hex)
	if err != nil {
		return "", err
	}
	return DIDKey(point)
}

func decodeHexPoint(s string) ([]byte, error) {
	point, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: public key hex: %w", ErrUnrecognizedEncoding, err)
	}
	return point, nil
}

func padScalar(scalar []byte) ([]byte, error) {
	if len(scalar) == 0 || len(scalar) > 32 {
		return nil, fmt.Errorf("P-256 private scalar must be 1 to 32 bytes, got %d", len(scalar))
	}
	padded := make([]byte, 32)
	copy(padded[32-len(scalar):], scalar)
	return padded, nil
}
