// Package eckey canonicalizes NIST P-256 / prime256v1 key material.
//
// Keys may be supplied as raw DER bytes, hex text, or PEM armored text. The package checks the DER structure against two fixed layouts (the SEC1 "EC PRIVATE KEY" container and the SPKI "PUBLIC KEY" container) and pulls out the raw private scalar and public point bytes. The result is a [KeyPairRecord] holding both the PEM text and the hex encoded raw values, the latter suitable for libraries which only deal in raw curve values.
//
// Only structure is validated: there are no point-on-curve checks in the codec itself. Anything needing an actual cryptographic engine (generating keys, deriving a public key from a private key, signing) goes through the [Provider] interface. [NativeProvider] implements it with the golang stdlib; the eckey/openssl package implements it by running the openssl command.
//
// The codec functions are pure and safe for concurrent use.
package eckey
