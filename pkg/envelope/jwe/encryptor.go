package jwe

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwe"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/envelope"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
)

// EncryptionType is the type identifier for RSA JWE encryption.
const EncryptionType = "JWE-RSA"

// Compile-time check that Encryptor implements envelope.Encryptor
var _ envelope.Encryptor = (*Encryptor)(nil)

// Encryptor provides envelope encryption using RSA-OAEP-256 for key wrapping
// and AES-256-GCM for data encryption, outputting JWE Compact Serialization
// format.
type Encryptor struct {
	keyID     string
	publicKey *keypair.PublicKey
}

// NewEncryptor creates a new Encryptor with the provided public key handle.
// The key must be encrypt-capable and at least keypair.MinModulusBits bits.
// The keyID is placed in the per-recipient "kid" header of every JWE produced,
// so recipients holding several private keys can route the payload.
func NewEncryptor(keyID string, publicKey *keypair.PublicKey) (*Encryptor, error) {
	if publicKey.Key() == nil {
		return nil, fmt.Errorf("RSA public key cannot be nil")
	}

	if keySize := publicKey.Bits(); keySize < keypair.MinModulusBits {
		return nil, fmt.Errorf("RSA key size must be at least %d bits, got %d bits", keypair.MinModulusBits, keySize)
	}

	if !publicKey.Allows(keypair.UsageEncrypt) {
		return nil, fmt.Errorf("key handle does not allow encryption")
	}

	if len(keyID) == 0 {
		return nil, fmt.Errorf("keyID cannot be empty")
	}

	return &Encryptor{
		keyID:     keyID,
		publicKey: publicKey,
	}, nil
}

// Encrypt performs envelope encryption on the provided data. It returns an
// EncryptedData struct containing JWE Compact Serialization format and type
// metadata. The JWE uses RSA-OAEP-256 for key encryption and A256GCM for
// content encryption.
func (e *Encryptor) Encrypt(ctx context.Context, data []byte) (*envelope.EncryptedData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data to encrypt cannot be empty")
	}

	headers := jwe.NewHeaders()
	if err := headers.Set("kid", e.keyID); err != nil {
		return nil, fmt.Errorf("failed to set key ID header: %w", err)
	}

	encrypted, err := jwe.Encrypt(
		data,
		jwe.WithKey(jwa.RSA_OAEP_256(), e.publicKey.Key(), jwe.WithPerRecipientHeaders(headers)),
		jwe.WithContentEncryption(jwa.A256GCM()),
		jwe.WithCompact(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}

	return &envelope.EncryptedData{
		Data: encrypted,
		Type: EncryptionType,
	}, nil
}
