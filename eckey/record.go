package eckey

// PEM text and hex encoded raw value of one key.
//
// The PEM holds the full DER container. The hex is NOT DER: it is the bare private scalar or public point.
type KeyText struct {
	PEM string `json:"pem"`
	Hex string `json:"hex"`
}

// Canonical output for a key operation. Priv is empty when only a public key was supplied.
type KeyPairRecord struct {
	Priv KeyText `json:"priv"`
	Pub  KeyText `json:"pub"`
}

func (r *KeyPairRecord) HasPrivate() bool {
	return r.Priv.PEM != "" || r.Priv.Hex != ""
}
