package keypair

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"fmt"
)

const (
	// AlgorithmRSAOAEP identifies the asymmetric algorithm every handle produced
	// by this package is bound to.
	AlgorithmRSAOAEP = "RSA-OAEP"

	// HashSHA256 identifies the OAEP digest every handle is bound to.
	HashSHA256 = "SHA-256"

	// DefaultModulusBits is the modulus size used when callers have no stronger
	// requirement.
	DefaultModulusBits = 2048

	// MinModulusBits is the minimum RSA modulus size in bits; we'd expect that
	// keys will be larger but 2048 is a sane floor to enforce to ensure that a
	// weak key can't accidentally be generated.
	MinModulusBits = 2048
)

// Usage restricts what an individual key handle may be used for.
type Usage string

const (
	// UsageEncrypt marks a public key handle as usable by the cipher service.
	UsageEncrypt Usage = "encrypt"

	// UsageDecrypt marks a private key handle as usable by the cipher service.
	UsageDecrypt Usage = "decrypt"
)

// PublicKey is an opaque handle to an RSA public key bound to RSA-OAEP/SHA-256.
// Use ExportPublicPEM to cross a text boundary; the handle itself is not
// serializable.
type PublicKey struct {
	key       *rsa.PublicKey
	algorithm string
	hash      string
	usages    []Usage
}

// PrivateKey is an opaque handle to an RSA private key bound to RSA-OAEP/SHA-256.
// Use ExportPrivatePEM to cross a text boundary; the handle itself is not
// serializable.
type PrivateKey struct {
	key       *rsa.PrivateKey
	algorithm string
	hash      string
	usages    []Usage
}

// KeyPair holds the two handles of a freshly generated RSA key pair.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// PEMPair is the portable text encoding of a key pair: an SPKI PEM for the
// public key and a PKCS8 PEM for the private key.
type PEMPair struct {
	Public  string
	Private string
}

// NewPublicKey adopts a platform public key obtained elsewhere (a JWK export, a
// test fixture) as an encrypt-only handle.
func NewPublicKey(key *rsa.PublicKey) *PublicKey {
	return &PublicKey{
		key:       key,
		algorithm: AlgorithmRSAOAEP,
		hash:      HashSHA256,
		usages:    []Usage{UsageEncrypt},
	}
}

// NewPrivateKey adopts a platform private key as a decrypt-only handle.
func NewPrivateKey(key *rsa.PrivateKey) *PrivateKey {
	return &PrivateKey{
		key:       key,
		algorithm: AlgorithmRSAOAEP,
		hash:      HashSHA256,
		usages:    []Usage{UsageDecrypt},
	}
}

// Generate creates a fresh RSA key pair with the given modulus size and the
// standard public exponent (65537). The public handle is tagged for encryption,
// the private handle for decryption. Every call produces an independent pair;
// nothing is cached.
func Generate(bits int) (*KeyPair, error) {
	if bits < MinModulusBits {
		return nil, fmt.Errorf("%w: modulus must be at least %d bits, got %d", ErrKeyGeneration, MinModulusBits, bits)
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	return &KeyPair{
		Public:  NewPublicKey(&key.PublicKey),
		Private: NewPrivateKey(key),
	}, nil
}

// GeneratePEM creates a fresh key pair and returns both PEM encodings. The two
// exports are independent of each other and share no state beyond the pair.
func GeneratePEM(bits int) (*PEMPair, error) {
	pair, err := Generate(bits)
	if err != nil {
		return nil, err
	}

	publicPEM, err := ExportPublicPEM(pair.Public)
	if err != nil {
		return nil, err
	}

	privatePEM, err := ExportPrivatePEM(pair.Private)
	if err != nil {
		return nil, err
	}

	return &PEMPair{Public: publicPEM, Private: privatePEM}, nil
}

// Key returns the underlying platform key, or nil for an empty handle.
func (k *PublicKey) Key() *rsa.PublicKey {
	if k == nil {
		return nil
	}
	return k.key
}

// Algorithm returns the algorithm tag of the handle.
func (k *PublicKey) Algorithm() string {
	if k == nil {
		return ""
	}
	return k.algorithm
}

// Hash returns the OAEP digest tag of the handle.
func (k *PublicKey) Hash() string {
	if k == nil {
		return ""
	}
	return k.hash
}

// Usages returns a copy of the handle's usage tags.
func (k *PublicKey) Usages() []Usage {
	if k == nil {
		return nil
	}
	out := make([]Usage, len(k.usages))
	copy(out, k.usages)
	return out
}

// Allows reports whether the handle carries the given usage tag.
func (k *PublicKey) Allows(usage Usage) bool {
	if k == nil {
		return false
	}
	for _, u := range k.usages {
		if u == usage {
			return true
		}
	}
	return false
}

// Bits returns the modulus size in bits, or 0 for an empty handle.
func (k *PublicKey) Bits() int {
	if k == nil || k.key == nil {
		return 0
	}
	return k.key.N.BitLen()
}

// Size returns the modulus size in bytes, or 0 for an empty handle. Ciphertext
// produced under this key is always exactly Size bytes long.
func (k *PublicKey) Size() int {
	if k == nil || k.key == nil {
		return 0
	}
	return k.key.Size()
}

// Fingerprint returns the lowercase hex SHA-256 digest of the key's SPKI DER
// encoding. The same key always has the same fingerprint regardless of whether
// it arrived by generation or by import.
func (k *PublicKey) Fingerprint() (string, error) {
	if k == nil || k.key == nil {
		return "", fmt.Errorf("%w: public key handle is empty", ErrExport)
	}

	der, err := x509.MarshalPKIXPublicKey(k.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:]), nil
}

// Key returns the underlying platform key, or nil for an empty handle.
func (k *PrivateKey) Key() *rsa.PrivateKey {
	if k == nil {
		return nil
	}
	return k.key
}

// Algorithm returns the algorithm tag of the handle.
func (k *PrivateKey) Algorithm() string {
	if k == nil {
		return ""
	}
	return k.algorithm
}

// Hash returns the OAEP digest tag of the handle.
func (k *PrivateKey) Hash() string {
	if k == nil {
		return ""
	}
	return k.hash
}

// Usages returns a copy of the handle's usage tags.
func (k *PrivateKey) Usages() []Usage {
	if k == nil {
		return nil
	}
	out := make([]Usage, len(k.usages))
	copy(out, k.usages)
	return out
}

// Allows reports whether the handle carries the given usage tag.
func (k *PrivateKey) Allows(usage Usage) bool {
	if k == nil {
		return false
	}
	for _, u := range k.usages {
		if u == usage {
			return true
		}
	}
	return false
}

// Bits returns the modulus size in bits, or 0 for an empty handle.
func (k *PrivateKey) Bits() int {
	if k == nil || k.key == nil {
		return 0
	}
	return k.key.N.BitLen()
}

// Size returns the modulus size in bytes, or 0 for an empty handle.
func (k *PrivateKey) Size() int {
	if k == nil || k.key == nil {
		return 0
	}
	return k.key.Size()
}

// Public derives the encrypt-capable public handle matching this private key.
func (k *PrivateKey) Public() *PublicKey {
	if k == nil || k.key == nil {
		return nil
	}
	return NewPublicKey(&k.key.PublicKey)
}

// Fingerprint returns the fingerprint of the matching public key.
func (k *PrivateKey) Fingerprint() (string, error) {
	pub := k.Public()
	if pub == nil {
		return "", fmt.Errorf("%w: private key handle is empty", ErrExport)
	}
	return pub.Fingerprint()
}
