package eckey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"
)

func asMismatch(t *testing.T, err error) *StructuralMismatch {
	t.Helper()
	require.ErrorIs(t, err, ErrStructuralMismatch)
	var sm *StructuralMismatch
	require.True(t, errors.As(err, &sm))
	return sm
}

func TestParseDER(t *testing.T) {
	assert := assert.New(t)

	root, err := ParseDER(mustHex(t, fixturePrivDERHex))
	require.NoError(t, err)
	assert.Equal(ClassUniversal, root.Class)
	assert.Equal(TagSequence, root.Tag)
	assert.True(root.Constructed)
	require.Len(t, root.Children, 4)
	assert.Equal(TagInteger, root.Children[0].Tag)
	assert.Equal([]byte{1}, root.Children[0].Value)
	assert.Equal(ClassContextSpecific, root.Children[2].Class)
	assert.Equal(TagType(0), root.Children[2].Tag)
	assert.Equal(TagType(1), root.Children[3].Tag)
	require.Len(t, root.Children[3].Children, 1)
	assert.Equal(TagBitString, root.Children[3].Children[0].Tag)

	_, err = ParseDER(nil)
	sm := asMismatch(t, err)
	assert.Equal("end of input", sm.Actual)

	_, err = ParseDER([]byte{0x02, 0x01, 0x01, 0x00})
	sm = asMismatch(t, err)
	assert.Equal("1 trailing bytes", sm.Actual)

	// length claims more content than present
	_, err = ParseDER([]byte{0x30, 0x05, 0x02, 0x01})
	asMismatch(t, err)

	// non-minimal length encoding
	_, err = ParseDER([]byte{0x04, 0x81, 0x01, 0xaa})
	asMismatch(t, err)
}

func TestParseDERDepth(t *testing.T) {
	der := []byte{0x05, 0x00}
	for i := 0; i < 40; i++ {
		var b cryptobyte.Builder
		inner := der
		b.AddASN1(casn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddBytes(inner)
		})
		der = b.BytesOrPanic()
	}
	_, err := ParseDER(der)
	sm := asMismatch(t, err)
	assert.Equal(t, "deeper nesting", sm.Actual)
}

func TestValidateFixtures(t *testing.T) {
	assert := assert.New(t)

	der := mustHex(t, fixturePrivDERHex)
	captures, err := Validate(der, PrivateKeySchema)
	require.NoError(t, err)
	assert.Equal([]byte{1}, captures[CaptureVersion])
	assert.Equal(fixturePrivHex, hexOf(captures[CapturePrivKey]))
	assert.Equal("2a8648ce3d030107", hexOf(captures[CaptureCurveName]))
	assert.Equal("00"+fixturePubHex, hexOf(captures[CapturePubKey]))

	// captures are copies
	der[7] ^= 0xff
	assert.Equal(fixturePrivHex, hexOf(captures[CapturePrivKey]))

	captures, err = Validate(mustHex(t, fixturePubDERHex), PublicKeySchema)
	require.NoError(t, err)
	assert.Equal("2a8648ce3d0201", hexOf(captures[CaptureKeyType]))
	assert.Equal("00"+fixturePubHex, hexOf(captures[CapturePubKey]))

	captures, err = Validate(mustHex(t, fixtureCompressedDERHex), PublicKeySchema)
	require.NoError(t, err)
	assert.Equal("00"+fixtureCompressedPubHex, hexOf(captures[CapturePubKey]))
}

func TestValidateMismatch(t *testing.T) {
	assert := assert.New(t)

	pub := mustHex(t, fixturePubDERHex)
	priv := mustHex(t, fixturePrivDERHex)

	table := []struct {
		der      []byte
		schema   *SchemaNode
		path     string
		expected string
		actual   string
	}{
		{
			der:      pub,
			schema:   PrivateKeySchema,
			path:     "ecPrivateKey.version",
			expected: "INTEGER (primitive)",
			actual:   "SEQUENCE (constructed)",
		},
		{
			der:      priv,
			schema:   PublicKeySchema,
			path:     "ecPublicKey.keyInfo",
			expected: "SEQUENCE (constructed)",
			actual:   "INTEGER (primitive)",
		},
		{
			der:      append(clone(priv), 0x00),
			schema:   PrivateKeySchema,
			path:     "ecPrivateKey",
			expected: "end of input",
			actual:   "1 trailing bytes",
		},
		{
			der:      []byte{0xaa},
			schema:   PrivateKeySchema,
			path:     "ecPrivateKey",
			expected: "well-formed DER element",
		},
		{
			der:      []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x04, 0x01, 0xaa},
			schema:   PrivateKeySchema,
			path:     "ecPrivateKey.curveParams",
			expected: "CONTEXT-SPECIFIC [0] (constructed)",
			actual:   "missing element",
		},
		{
			der:      append(append([]byte{0x30, 0x5b}, pub[2:]...), 0x05, 0x00),
			schema:   PublicKeySchema,
			path:     "ecPublicKey",
			expected: "2 elements",
			actual:   "3 elements",
		},
	}

	for _, row := range table {
		_, err := Validate(row.der, row.schema)
		sm := asMismatch(t, err)
		assert.Equal(row.path, sm.Path)
		assert.Equal(row.expected, sm.Expected)
		if row.actual != "" {
			assert.Equal(row.actual, sm.Actual)
		}
	}

	_, err := Validate(priv, nil)
	asMismatch(t, err)
}

func TestValidateWrongCurve(t *testing.T) {
	assert := assert.New(t)

	_, err := ParsePrivate(readFixture(t, "secp256k1-keypair.pem"))
	sm := asMismatch(t, err)
	assert.Equal("ecPrivateKey.curveParams.curveName", sm.Path)
	assert.Equal("OID 1.2.840.10045.3.1.7", sm.Expected)
	assert.Equal("OID 1.3.132.0.10", sm.Actual)
	assert.Contains(err.Error(), "ecPrivateKey.curveParams.curveName")

	_, err = ParsePublic(readFixture(t, "secp256k1-pubkey.pem"))
	sm = asMismatch(t, err)
	assert.Equal("ecPublicKey.keyInfo.curveName", sm.Path)
	assert.Equal("OID 1.3.132.0.10", sm.Actual)
}
