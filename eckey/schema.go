package eckey

import (
	"encoding/asn1"
)

var (
	// id-ecPublicKey
	OIDECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	// prime256v1 / secp256r1 / P-256
	OIDNamedCurveP256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
)

// Capture names used by [PrivateKeySchema] and [PublicKeySchema].
const (
	CaptureVersion   = "version"
	CapturePrivKey   = "privKey"
	CaptureCurveName = "curveName"
	CapturePubKey    = "pubKey"
	CaptureKeyType   = "keyType"
)

// A pattern matched against one DER element.
//
// Children are matched positionally; every child is required. If Value is non-nil the element content must equal it exactly. If Capture is set, the element content is recorded under that name.
type SchemaNode struct {
	Name        string
	Class       Class
	Tag         TagType
	Constructed bool
	Value       []byte
	Capture     string
	Children    []*SchemaNode
}

func (s *SchemaNode) describe() string {
	return describeTag(s.Class, s.Tag, s.Constructed)
}

// SEC1 EC private key container ("EC PRIVATE KEY"), restricted to the P-256 named curve with the public key included.
//
//	ECPrivateKey ::= SEQUENCE {
//	  version        INTEGER,
//	  privateKey     OCTET STRING,
//	  parameters [0] OBJECT IDENTIFIER,
//	  publicKey  [1] BIT STRING }
//
// Shared and read-only; do not modify.
var PrivateKeySchema = &SchemaNode{
	Name:        "ecPrivateKey",
	Class:       ClassUniversal,
	Tag:         TagSequence,
	Constructed: true,
	Children: []*SchemaNode{
		{
			Name:    "version",
			Class:   ClassUniversal,
			Tag:     TagInteger,
			Capture: CaptureVersion,
		},
		{
			Name:    "privKey",
			Class:   ClassUniversal,
			Tag:     TagOctetString,
			Capture: CapturePrivKey,
		},
		{
			Name:        "curveParams",
			Class:       ClassContextSpecific,
			Tag:         0,
			Constructed: true,
			Children: []*SchemaNode{
				{
					Name:    "curveName",
					Class:   ClassUniversal,
					Tag:     TagOID,
					Value:   oidContent(OIDNamedCurveP256),
					Capture: CaptureCurveName,
				},
			},
		},
		{
			Name:        "pubKeyWrapper",
			Class:       ClassContextSpecific,
			Tag:         1,
			Constructed: true,
			Children: []*SchemaNode{
				{
					Name:    "pubKey",
					Class:   ClassUniversal,
					Tag:     TagBitString,
					Capture: CapturePubKey,
				},
			},
		},
	},
}

// SPKI public key container ("PUBLIC KEY"), restricted to id-ecPublicKey on the P-256 named curve.
//
//	SubjectPublicKeyInfo ::= SEQUENCE {
//	  algorithm SEQUENCE {
//	    algorithm  OBJECT IDENTIFIER,
//	    namedCurve OBJECT IDENTIFIER },
//	  subjectPublicKey BIT STRING }
//
// Shared and read-only; do not modify.
var PublicKeySchema = &SchemaNode{
	Name:        "ecPublicKey",
	Class:       ClassUniversal,
	Tag:         TagSequence,
	Constructed: true,
	Children: []*SchemaNode{
		{
			Name:        "keyInfo",
			Class:       ClassUniversal,
			Tag:         TagSequence,
			Constructed: true,
			Children: []*SchemaNode{
				{
					Name:    "keyType",
					Class:   ClassUniversal,
					Tag:     TagOID,
					Value:   oidContent(OIDECPublicKey),
					Capture: CaptureKeyType,
				},
				{
					Name:    "curveName",
					Class:   ClassUniversal,
					Tag:     TagOID,
					Value:   oidContent(OIDNamedCurveP256),
					Capture: CaptureCurveName,
				},
			},
		},
		{
			Name:    "pubKey",
			Class:   ClassUniversal,
			Tag:     TagBitString,
			Capture: CapturePubKey,
		},
	},
}
