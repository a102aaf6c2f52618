package jwe

import (
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwe"
)

// KeyID reads the "kid" protected header from a JWE Compact Serialization
// payload without decrypting it, so callers holding several private keys can
// pick the right Decryptor before doing any expensive work.
func KeyID(data []byte) (string, error) {
	msg, err := jwe.Parse(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse JWE message: %w", err)
	}

	kid, ok := msg.ProtectedHeaders().KeyID()
	if !ok {
		return "", fmt.Errorf("JWE message has no key ID header")
	}

	return kid, nil
}
