package eckey

import (
	"encoding/asn1"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// ASN.1 tag class.
type Class uint8

const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContextSpecific:
		return "CONTEXT-SPECIFIC"
	case ClassPrivate:
		return "PRIVATE"
	default:
		return "INVALID"
	}
}

// ASN.1 tag number. Names only apply to the universal class; for context-specific tags it is just the [N] number.
type TagType uint8

const (
	TagBoolean     TagType = 1
	TagInteger     TagType = 2
	TagBitString   TagType = 3
	TagOctetString TagType = 4
	TagNull        TagType = 5
	TagOID         TagType = 6
	TagUTF8String  TagType = 12
	TagSequence    TagType = 16
	TagSet         TagType = 17
)

func (t TagType) String() string {
	switch t {
	case TagBoolean:
		return "BOOLEAN"
	case TagInteger:
		return "INTEGER"
	case TagBitString:
		return "BIT STRING"
	case TagOctetString:
		return "OCTET STRING"
	case TagNull:
		return "NULL"
	case TagOID:
		return "OBJECT IDENTIFIER"
	case TagUTF8String:
		return "UTF8String"
	case TagSequence:
		return "SEQUENCE"
	case TagSet:
		return "SET"
	default:
		return fmt.Sprintf("TAG(%d)", uint8(t))
	}
}

// A decoded DER element.
type Node struct {
	Class       Class
	Tag         TagType
	Constructed bool
	// content octets (no tag or length header). Aliases the buffer passed to ParseDER.
	Value    []byte
	Children []*Node
}

// nesting limit for ParseDER; the key containers are three levels deep
const maxDERDepth = 32

// Decodes exactly one DER element, recursing into constructed elements.
//
// DER length rules are enforced (definite, minimal lengths) and only low tag numbers (< 31) are supported. Trailing bytes after the element are an error. Errors are always [*StructuralMismatch].
func ParseDER(der []byte) (*Node, error) {
	s := cryptobyte.String(der)
	n, err := readNode(&s, 0)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, mismatch("", "end of input", fmt.Sprintf("%d trailing bytes", len(s)))
	}
	return n, nil
}

func readNode(s *cryptobyte.String, depth int) (*Node, error) {
	if depth > maxDERDepth {
		return nil, mismatch("", "DER nesting depth at most 32", "deeper nesting")
	}
	if s.Empty() {
		return nil, mismatch("", "DER element", "end of input")
	}
	var content cryptobyte.String
	var tag casn1.Tag
	if !s.ReadAnyASN1(&content, &tag) {
		return nil, mismatch("", "well-formed DER element", fmt.Sprintf("malformed or truncated element (%d bytes remaining)", len(*s)))
	}
	n := &Node{
		Class:       Class(uint8(tag) >> 6),
		Tag:         TagType(uint8(tag) & 0x1f),
		Constructed: uint8(tag)&0x20 != 0,
		Value:       content,
	}
	if n.Constructed {
		for !content.Empty() {
			child, err := readNode(&content, depth+1)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	}
	return n, nil
}

func describeTag(class Class, tag TagType, constructed bool) string {
	form := "primitive"
	if constructed {
		form = "constructed"
	}
	if class == ClassUniversal {
		return fmt.Sprintf("%s (%s)", tag, form)
	}
	return fmt.Sprintf("%s [%d] (%s)", class, uint8(tag), form)
}

func (n *Node) describe() string {
	return describeTag(n.Class, n.Tag, n.Constructed)
}

// Returns the DER content octets of an OBJECT IDENTIFIER.
func oidContent(oid asn1.ObjectIdentifier) []byte {
	var b cryptobyte.Builder
	b.AddASN1ObjectIdentifier(oid)
	elem := cryptobyte.String(b.BytesOrPanic())
	var content cryptobyte.String
	if !elem.ReadASN1(&content, casn1.OBJECT_IDENTIFIER) {
		panic("eckey: failed to re-read encoded OID")
	}
	return content
}

// Formats OID content octets in dotted form, falling back to hex for anything undecodable.
func formatOID(content []byte) string {
	var b cryptobyte.Builder
	b.AddASN1(casn1.OBJECT_IDENTIFIER, func(c *cryptobyte.Builder) {
		c.AddBytes(content)
	})
	elem, err := b.Bytes()
	if err != nil {
		return hex.EncodeToString(content)
	}
	var oid asn1.ObjectIdentifier
	s := cryptobyte.String(elem)
	if !s.ReadASN1ObjectIdentifier(&oid) {
		return hex.EncodeToString(content)
	}
	return oid.String()
}
