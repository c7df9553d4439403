package eckey

import (
	"encoding/hex"
	"fmt"
)

// Raw key values from a validated private key container.
type PrivateKeyMaterial struct {
	// private scalar, verbatim from the OCTET STRING (no padding)
	PrivKey []byte
	// public point, BIT STRING content without the unused-bits byte
	PubKey []byte
}

// Lowercase hex of the private scalar.
func (m *PrivateKeyMaterial) PrivHex() string {
	return hex.EncodeToString(m.PrivKey)
}

// Lowercase hex of the public point.
func (m *PrivateKeyMaterial) PubHex() string {
	return hex.EncodeToString(m.PubKey)
}

// Raw key values from a validated public key container.
type PublicKeyMaterial struct {
	PubKey []byte
}

func (m *PublicKeyMaterial) PubHex() string {
	return hex.EncodeToString(m.PubKey)
}

// Controls how captured values are turned in to key material.
type ExtractOptions struct {
	// reject a BIT STRING with a nonzero unused-bits count. EC points are always byte aligned, so a nonzero count means corrupt input, but it is accepted by default.
	StrictBitString bool
}

// Extracts key material from a [PrivateKeySchema] capture set, with default options.
func ExtractPrivate(captures CaptureSet) (*PrivateKeyMaterial, error) {
	return ExtractOptions{}.Private(captures)
}

// Extracts key material from a [PublicKeySchema] capture set, with default options.
func ExtractPublic(captures CaptureSet) (*PublicKeyMaterial, error) {
	return ExtractOptions{}.Public(captures)
}

func (o ExtractOptions) Private(captures CaptureSet) (*PrivateKeyMaterial, error) {
	priv, ok := captures[CapturePrivKey]
	if !ok {
		return nil, mismatch(PrivateKeySchema.Name+".privKey", "captured privKey", "missing capture")
	}
	pub, err := o.point(captures, PrivateKeySchema.Name+".pubKeyWrapper.pubKey")
	if err != nil {
		return nil, err
	}
	return &PrivateKeyMaterial{
		PrivKey: clone(priv),
		PubKey:  pub,
	}, nil
}

func (o ExtractOptions) Public(captures CaptureSet) (*PublicKeyMaterial, error) {
	pub, err := o.point(captures, PublicKeySchema.Name+".pubKey")
	if err != nil {
		return nil, err
	}
	return &PublicKeyMaterial{PubKey: pub}, nil
}

// strips the leading unused-bits byte from captured BIT STRING content
func (o ExtractOptions) point(captures CaptureSet, path string) ([]byte, error) {
	raw, ok := captures[CapturePubKey]
	if !ok {
		return nil, mismatch(path, "captured pubKey", "missing capture")
	}
	if len(raw) == 0 {
		return nil, mismatch(path, "BIT STRING with unused-bits byte", "empty BIT STRING")
	}
	if o.StrictBitString && raw[0] != 0 {
		return nil, mismatch(path, "unused-bits count 0", fmt.Sprintf("unused-bits count %d", raw[0]))
	}
	return clone(raw[1:]), nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
