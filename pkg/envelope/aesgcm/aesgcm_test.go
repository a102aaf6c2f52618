package aesgcm_test

import (
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/envelope"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/envelope/aesgcm"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
)

var (
	testPairOnce sync.Once
	testPair     *keypair.KeyPair
)

// testKeyPair generates and returns a singleton key pair, to avoid generating a
// new pair for each test.
func testKeyPair() *keypair.KeyPair {
	testPairOnce.Do(func() {
		pair, err := keypair.Generate(keypair.DefaultModulusBits)
		if err != nil {
			panic("failed to generate test key pair: " + err.Error())
		}

		testPair = pair
	})

	return testPair
}

func TestNewEncryptor_ValidKeys(t *testing.T) {
	tests := []struct {
		name    string
		keySize int
	}{
		{"2048 bits", 2048},
		{"3072 bits", 3072},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := keypair.Generate(tt.keySize)
			require.NoError(t, err)

			enc, err := aesgcm.NewEncryptor(pair.Public)
			require.NoError(t, err)
			require.NotNil(t, enc)
		})
	}
}

func TestNewEncryptor_RejectsSmallKeys(t *testing.T) {
	// NB: a future Go release might refuse to generate keys this small; if that
	// happens this fixture needs to become a hardcoded PEM.
	small, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	enc, err := aesgcm.NewEncryptor(keypair.NewPublicKey(&small.PublicKey))
	require.Error(t, err)
	require.Nil(t, enc)
	require.Contains(t, err.Error(), "must be at least 2048 bits")
}

func TestNewEncryptor_NilKey(t *testing.T) {
	enc, err := aesgcm.NewEncryptor(nil)
	require.Error(t, err)
	require.Nil(t, enc)
	require.Contains(t, err.Error(), "cannot be nil")
}

func TestNewDecryptor_NilKey(t *testing.T) {
	dec, err := aesgcm.NewDecryptor(nil)
	require.Error(t, err)
	require.Nil(t, dec)
	require.Contains(t, err.Error(), "cannot be nil")
}

func TestEncrypt_VariousDataSizes(t *testing.T) {
	pair := testKeyPair()

	enc, err := aesgcm.NewEncryptor(pair.Public)
	require.NoError(t, err)

	tests := []struct {
		name     string
		dataSize int
	}{
		{"small (10 bytes)", 10},
		{"medium (1 KB)", 1024},
		{"large (1 MB)", 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, tt.dataSize)
			_, err := rand.Read(data)
			require.NoError(t, err)

			result, err := enc.Encrypt(t.Context(), data)
			require.NoError(t, err)
			require.NotNil(t, result)
			require.Equal(t, aesgcm.EncryptionType, result.Type)

			// wrapped key (modulus size) + nonce (12) + ciphertext with GCM tag
			require.Greater(t, len(result.Data), pair.Public.Size()+12+tt.dataSize)
			require.NotEqual(t, data, result.Data)
		})
	}
}

func TestEncrypt_EmptyData(t *testing.T) {
	pair := testKeyPair()

	enc, err := aesgcm.NewEncryptor(pair.Public)
	require.NoError(t, err)

	result, err := enc.Encrypt(t.Context(), []byte{})
	require.Error(t, err)
	require.Nil(t, result)
	require.Contains(t, err.Error(), "cannot be empty")
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	pair := testKeyPair()

	enc, err := aesgcm.NewEncryptor(pair.Public)
	require.NoError(t, err)

	data := []byte("test data for encryption")

	result1, err := enc.Encrypt(t.Context(), data)
	require.NoError(t, err)

	result2, err := enc.Encrypt(t.Context(), data)
	require.NoError(t, err)

	// Fresh AES key, nonce and OAEP padding on every call.
	require.NotEqual(t, result1.Data, result2.Data)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	pair := testKeyPair()

	enc, err := aesgcm.NewEncryptor(pair.Public)
	require.NoError(t, err)

	dec, err := aesgcm.NewDecryptor(pair.Private)
	require.NoError(t, err)

	originalData := make([]byte, 64*1024)
	_, err = rand.Read(originalData)
	require.NoError(t, err)

	encrypted, err := enc.Encrypt(t.Context(), originalData)
	require.NoError(t, err)

	decrypted, err := dec.Decrypt(t.Context(), encrypted)
	require.NoError(t, err)
	require.Equal(t, originalData, decrypted)
}

func TestDecrypt_WrongKey(t *testing.T) {
	pair := testKeyPair()

	other, err := keypair.Generate(keypair.DefaultModulusBits)
	require.NoError(t, err)

	enc, err := aesgcm.NewEncryptor(pair.Public)
	require.NoError(t, err)

	dec, err := aesgcm.NewDecryptor(other.Private)
	require.NoError(t, err)

	encrypted, err := enc.Encrypt(t.Context(), []byte("secret payload"))
	require.NoError(t, err)

	decrypted, err := dec.Decrypt(t.Context(), encrypted)
	require.Error(t, err, "unwrapping the AES key with the wrong RSA key must fail")
	require.Nil(t, decrypted)
}

func TestDecrypt_WrongType(t *testing.T) {
	pair := testKeyPair()

	enc, err := aesgcm.NewEncryptor(pair.Public)
	require.NoError(t, err)

	dec, err := aesgcm.NewDecryptor(pair.Private)
	require.NoError(t, err)

	encrypted, err := enc.Encrypt(t.Context(), []byte("payload"))
	require.NoError(t, err)

	encrypted.Type = "JWE-RSA"

	decrypted, err := dec.Decrypt(t.Context(), encrypted)
	require.Error(t, err)
	require.Nil(t, decrypted)
	require.Contains(t, err.Error(), "unexpected encryption type")
}

func TestDecrypt_TruncatedPayload(t *testing.T) {
	pair := testKeyPair()

	dec, err := aesgcm.NewDecryptor(pair.Private)
	require.NoError(t, err)

	truncated := &envelope.EncryptedData{
		Data: make([]byte, pair.Private.Size()), // wrapped key only, nonce missing
		Type: aesgcm.EncryptionType,
	}

	decrypted, err := dec.Decrypt(t.Context(), truncated)
	require.Error(t, err)
	require.Nil(t, decrypted)
	require.Contains(t, err.Error(), "too short")
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	pair := testKeyPair()

	enc, err := aesgcm.NewEncryptor(pair.Public)
	require.NoError(t, err)

	dec, err := aesgcm.NewDecryptor(pair.Private)
	require.NoError(t, err)

	encrypted, err := enc.Encrypt(t.Context(), []byte("authenticated payload"))
	require.NoError(t, err)

	// Flip a bit in the GCM ciphertext; the auth tag check must fail.
	encrypted.Data[len(encrypted.Data)-1] ^= 0x01

	decrypted, err := dec.Decrypt(t.Context(), encrypted)
	require.Error(t, err)
	require.Nil(t, decrypted)
}
