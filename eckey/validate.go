package eckey

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
)

// Named raw content captured while validating DER against a [SchemaNode] tree.
type CaptureSet map[string][]byte

// Decodes DER and matches it against a schema, returning the captured element contents.
//
// Matching is positional and depth-first. Any failure, including malformed or truncated DER and trailing bytes, is returned as a [*StructuralMismatch]; no captures are returned in that case. Captured values are copies and do not alias der.
func Validate(der []byte, schema *SchemaNode) (CaptureSet, error) {
	if schema == nil {
		return nil, mismatch("", "a schema", "nil schema")
	}
	root, err := ParseDER(der)
	if err != nil {
		var sm *StructuralMismatch
		if errors.As(err, &sm) && sm.Path == "" {
			sm.Path = schema.Name
		}
		return nil, err
	}
	captures := CaptureSet{}
	if err := matchNode(root, schema, schema.Name, captures); err != nil {
		return nil, err
	}
	return captures, nil
}

func matchNode(n *Node, s *SchemaNode, path string, captures CaptureSet) error {
	if n.Class != s.Class || n.Tag != s.Tag || n.Constructed != s.Constructed {
		return mismatch(path, s.describe(), n.describe())
	}
	if s.Value != nil && !bytes.Equal(n.Value, s.Value) {
		return mismatch(path, formatValue(s, s.Value), formatValue(s, n.Value))
	}
	if s.Constructed {
		// positional matches first, so a wrong element is reported before a wrong count
		for i, child := range s.Children {
			if i >= len(n.Children) {
				return mismatch(path+"."+child.Name, child.describe(), "missing element")
			}
			if err := matchNode(n.Children[i], child, path+"."+child.Name, captures); err != nil {
				return err
			}
		}
		if len(n.Children) > len(s.Children) {
			return mismatch(path, fmt.Sprintf("%d elements", len(s.Children)), fmt.Sprintf("%d elements", len(n.Children)))
		}
	}
	if s.Capture != "" {
		captures[s.Capture] = clone(n.Value)
	}
	return nil
}

func formatValue(s *SchemaNode, v []byte) string {
	if s.Class == ClassUniversal && s.Tag == TagOID {
		return "OID " + formatOID(v)
	}
	return "0x" + hex.EncodeToString(v)
}
