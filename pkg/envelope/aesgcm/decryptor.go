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

// Compile-time check that Decryptor implements envelope.Decryptor
var _ envelope.Decryptor = (*Decryptor)(nil)

// Decryptor opens payloads produced by Encryptor using the matching RSA
// private key.
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

// Decrypt reverses Encrypt: it splits the payload into wrapped key, nonce and
// ciphertext, unwraps the AES key with RSA-OAEP-SHA256, and opens the
// AES-256-GCM ciphertext. A payload produced under a different key pair fails
// the unwrap and the failure propagates as an error.
func (d *Decryptor) Decrypt(ctx context.Context, encrypted *envelope.EncryptedData) ([]byte, error) {
	if encrypted == nil {
		return nil, fmt.Errorf("encrypted data cannot be nil")
	}

	if encrypted.Type != EncryptionType {
		return nil, fmt.Errorf("unexpected encryption type %q (expected %q)", encrypted.Type, EncryptionType)
	}

	keySize := d.privateKey.Size()
	if len(encrypted.Data) < keySize+nonceSize {
		return nil, fmt.Errorf("encrypted payload is %d bytes, too short for a wrapped key and nonce (%d bytes)",
			len(encrypted.Data), keySize+nonceSize)
	}

	wrappedKey := encrypted.Data[:keySize]
	nonce := encrypted.Data[keySize : keySize+nonceSize]
	ciphertext := encrypted.Data[keySize+nonceSize:]

	aesKey, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, d.privateKey.Key(), wrappedKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap AES key with RSA: %w", err)
	}

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open AES-GCM ciphertext: %w", err)
	}

	return plaintext, nil
}
