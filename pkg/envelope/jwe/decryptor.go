package jwe

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwe"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/envelope"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
)

// Compile-time check that Decryptor implements envelope.Decryptor
var _ envelope.Decryptor = (*Decryptor)(nil)

// Decryptor opens JWE Compact Serialization payloads produced by Encryptor
// using the matching RSA private key.
type Decryptor struct {
	privateKey *keypair.PrivateKey
}

// NewDecryptor creates a new Decryptor with the provided private key handle.
func NewDecryptor(privateKey *keypair.PrivateKey) (*Decryptor, error) {
	if privateKey.Key() == nil {
		return nil, fmt.Errorf("RSA private key cannot be nil")
	}

	if !privateKey.Allows(keypair.UsageDecrypt) {
		return nil, fmt.Errorf("key handle does not allow decryption")
	}

	return &Decryptor{privateKey: privateKey}, nil
}

// Decrypt recovers the plaintext from a JWE-RSA EncryptedData struct. A
// payload produced under a different key pair fails the key unwrap inside the
// JWE library and the failure propagates as an error.
func (d *Decryptor) Decrypt(ctx context.Context, encrypted *envelope.EncryptedData) ([]byte, error) {
	if encrypted == nil {
		return nil, fmt.Errorf("encrypted data cannot be nil")
	}

	if encrypted.Type != EncryptionType {
		return nil, fmt.Errorf("unexpected encryption type %q (expected %q)", encrypted.Type, EncryptionType)
	}

	plaintext, err := jwe.Decrypt(
		encrypted.Data,
		jwe.WithKey(jwa.RSA_OAEP_256(), d.privateKey.Key()),
		jwe.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %w", err)
	}

	return plaintext, nil
}
