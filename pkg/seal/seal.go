package seal

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"unicode/utf8"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
)

// Capacity returns the maximum plaintext size in bytes that a single RSA-OAEP
// operation under the given key can carry: the modulus size minus the
// OAEP/SHA-256 overhead of two digests plus two bytes. A 2048-bit key yields
// 190 bytes. Empty handles yield 0.
func Capacity(key *keypair.PublicKey) int {
	size := key.Size()
	if size == 0 {
		return 0
	}

	capacity := size - 2*sha256.Size - 2
	if capacity < 0 {
		return 0
	}

	return capacity
}

// Encrypt encrypts plaintext under the public key with RSA-OAEP/SHA-256 and no
// label, returning raw ciphertext of exactly key.Size() bytes. OAEP padding is
// randomized, so encrypting identical plaintext twice yields different
// ciphertexts. An empty plaintext is valid and round-trips to an empty string.
func Encrypt(key *keypair.PublicKey, plaintext []byte) ([]byte, error) {
	if key.Key() == nil {
		return nil, fmt.Errorf("%w: public key handle is empty", ErrEncryption)
	}

	if !key.Allows(keypair.UsageEncrypt) {
		return nil, fmt.Errorf("%w: key handle does not allow encryption", ErrEncryption)
	}

	if key.Bits() < keypair.MinModulusBits {
		return nil, fmt.Errorf("%w: key size must be at least %d bits, got %d bits", ErrEncryption, keypair.MinModulusBits, key.Bits())
	}

	if capacity := Capacity(key); len(plaintext) > capacity {
		return nil, fmt.Errorf("%w: plaintext is %d bytes, exceeds the %d byte OAEP capacity of a %d-bit key",
			ErrEncryption, len(plaintext), capacity, key.Bits())
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, key.Key(), plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	return ciphertext, nil
}

// Decrypt reverses Encrypt and decodes the recovered bytes as UTF-8 text. A
// ciphertext produced under a different key pair fails the OAEP integrity check
// inside the provider; that failure propagates as an error and is never
// converted into garbled text.
func Decrypt(key *keypair.PrivateKey, ciphertext []byte) (string, error) {
	if key.Key() == nil {
		return "", fmt.Errorf("%w: private key handle is empty", ErrDecryption)
	}

	if !key.Allows(keypair.UsageDecrypt) {
		return "", fmt.Errorf("%w: key handle does not allow decryption", ErrDecryption)
	}

	if len(ciphertext) != key.Size() {
		return "", fmt.Errorf("%w: ciphertext is %d bytes, want %d for a %d-bit key",
			ErrDecryption, len(ciphertext), key.Size(), key.Bits())
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, key.Key(), ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: recovered plaintext is not valid UTF-8", ErrDecryption)
	}

	return string(plaintext), nil
}

// EncryptPEM is the text-boundary variant of Encrypt: it imports the PEM public
// key, encrypts the message, and wraps the ciphertext in a base64 transport
// Message. Import failures propagate as keypair.ErrKeyImport.
func EncryptPEM(message string, publicKeyPEM string) (Message, error) {
	key, err := keypair.ImportPublicPEM(publicKeyPEM)
	if err != nil {
		return Message{}, err
	}

	ciphertext, err := Encrypt(key, []byte(message))
	if err != nil {
		return Message{}, err
	}

	return NewMessage(ciphertext), nil
}

// DecryptPEM is the text-boundary variant of Decrypt: it imports the PEM
// private key, base64-decodes the transport Message, and decrypts.
func DecryptPEM(msg Message, privateKeyPEM string) (string, error) {
	key, err := keypair.ImportPrivatePEM(privateKeyPEM)
	if err != nil {
		return "", err
	}

	ciphertext, err := msg.Bytes()
	if err != nil {
		return "", err
	}

	return Decrypt(key, ciphertext)
}
