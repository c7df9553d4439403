package eckey

// Normalizes, validates and extracts a private key input (raw DER, hex, or PEM), with default options.
func ParsePrivate(input any) (*PrivateKeyMaterial, error) {
	return ExtractOptions{}.ParsePrivate(input)
}

// Normalizes, validates and extracts a public key input (raw DER, hex, or PEM), with default options.
func ParsePublic(input any) (*PublicKeyMaterial, error) {
	return ExtractOptions{}.ParsePublic(input)
}

func (o ExtractOptions) ParsePrivate(input any) (*PrivateKeyMaterial, error) {
	der, err := Normalize(input)
	if err != nil {
		return nil, err
	}
	captures, err := Validate(der, PrivateKeySchema)
	if err != nil {
		return nil, err
	}
	return o.Private(captures)
}

func (o ExtractOptions) ParsePublic(input any) (*PublicKeyMaterial, error) {
	der, err := Normalize(input)
	if err != nil {
		return nil, err
	}
	captures, err := Validate(der, PublicKeySchema)
	if err != nil {
		return nil, err
	}
	return o.Public(captures)
}
