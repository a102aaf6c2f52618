package aesgcm

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/envelope"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
)

const (
	// aesKeySize is the size of the AES-256 key in bytes; aes.NewCipher selects
	// the cipher strength from the length of the key passed in.
	aesKeySize = 32

	// nonceSize is the size of the AES-GCM nonce in bytes. NB: nonce reuse with
	// the same key breaks AES-GCM completely. A fresh AES key is generated for
	// every Encrypt call, so random nonces are safe here.
	nonceSize = 12

	// EncryptionType is the type identifier for the raw wrapped-key format:
	// wrappedKey || nonce || ciphertext.
	EncryptionType = "RSA-OAEP-AES-GCM"
)

// Compile-time check that Encryptor implements envelope.Encryptor
var _ envelope.Encryptor = (*Encryptor)(nil)

// Encryptor provides envelope encryption using RSA-OAEP-SHA256 for key wrapping
// and AES-256-GCM for data encryption.
type Encryptor struct {
	publicKey *keypair.PublicKey
}

// NewEncryptor creates a new Encryptor with the provided public key handle.
// The key must be encrypt-capable and at least keypair.MinModulusBits bits.
func NewEncryptor(publicKey *keypair.PublicKey) (*Encryptor, error) {
	if publicKey.Key() == nil {
		return nil, fmt.Errorf("RSA public key cannot be nil")
	}

	if keySize := publicKey.Bits(); keySize < keypair.MinModulusBits {
		return nil, fmt.Errorf("RSA key size must be at least %d bits, got %d bits", keypair.MinModulusBits, keySize)
	}

	if !publicKey.Allows(keypair.UsageEncrypt) {
		return nil, fmt.Errorf("key handle does not allow encryption")
	}

	return &Encryptor{publicKey: publicKey}, nil
}

// Encrypt performs envelope encryption on the provided data. It generates a
// random AES-256 key, encrypts the data with AES-256-GCM, wraps the AES key
// with RSA-OAEP-SHA256, and concatenates the three parts into
// EncryptedData.Data.
func (e *Encryptor) Encrypt(ctx context.Context, data []byte) (*envelope.EncryptedData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data to encrypt cannot be empty")
	}

	aesKey := make([]byte, aesKeySize)
	if _, err := rand.Read(aesKey); err != nil {
		return nil, fmt.Errorf("failed to generate AES key: %w", err)
	}

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	wrappedKey, err := rsa.EncryptOAEP(
		sha256.New(),
		rand.Reader,
		e.publicKey.Key(),
		aesKey,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap AES key with RSA: %w", err)
	}

	out := make([]byte, 0, len(wrappedKey)+nonceSize+len(data)+gcm.Overhead())
	out = append(out, wrappedKey...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, data, nil)

	return &envelope.EncryptedData{
		Data: out,
		Type: EncryptionType,
	}, nil
}
