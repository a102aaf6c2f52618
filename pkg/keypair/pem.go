package keypair

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// PEM block types accepted by the import functions. Export always writes the
// standards-preferred forms: SPKI ("PUBLIC KEY") and PKCS8 ("PRIVATE KEY").
const (
	pemTypePublic       = "PUBLIC KEY"
	pemTypePublicPKCS1  = "RSA PUBLIC KEY"
	pemTypePrivate      = "PRIVATE KEY"
	pemTypePrivatePKCS1 = "RSA PRIVATE KEY"
)

// ExportPublicPEM serializes a public key handle to SPKI DER framed as a
// "PUBLIC KEY" PEM block, base64 body wrapped at 64 characters per line.
func ExportPublicPEM(key *PublicKey) (string, error) {
	if key == nil || key.key == nil {
		return "", fmt.Errorf("%w: public key handle is empty", ErrExport)
	}

	der, err := x509.MarshalPKIXPublicKey(key.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: pemTypePublic, Bytes: der})), nil
}

// ExportPrivatePEM serializes a private key handle to PKCS8 DER framed as a
// "PRIVATE KEY" PEM block.
func ExportPrivatePEM(key *PrivateKey) (string, error) {
	if key == nil || key.key == nil {
		return "", fmt.Errorf("%w: private key handle is empty", ErrExport)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: pemTypePrivate, Bytes: der})), nil
}

// ImportPublicPEM parses PEM text into an encrypt-only public key handle.
// The PEM block must be of type "PUBLIC KEY" (SPKI) or "RSA PUBLIC KEY" (PKCS1).
func ImportPublicPEM(text string) (*PublicKey, error) {
	block, _ := pem.Decode([]byte(text))
	if block == nil {
		return nil, fmt.Errorf("%w: failed to decode PEM block", ErrKeyImport)
	}

	switch block.Type {
	case pemTypePublic:
		pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse PKIX public key: %v", ErrKeyImport, err)
		}

		rsaKey, ok := pubKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: key is not an RSA public key, got %T", ErrKeyImport, pubKey)
		}

		return NewPublicKey(rsaKey), nil

	case pemTypePublicPKCS1:
		rsaKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse PKCS1 public key: %v", ErrKeyImport, err)
		}

		return NewPublicKey(rsaKey), nil
	}

	return nil, fmt.Errorf("%w: unsupported PEM block type %q (expected %q or %q)",
		ErrKeyImport, block.Type, pemTypePublic, pemTypePublicPKCS1)
}

// ImportPrivatePEM parses PEM text into a decrypt-only private key handle.
// The PEM block must be of type "PRIVATE KEY" (PKCS8) or "RSA PRIVATE KEY" (PKCS1).
func ImportPrivatePEM(text string) (*PrivateKey, error) {
	block, _ := pem.Decode([]byte(text))
	if block == nil {
		return nil, fmt.Errorf("%w: failed to decode PEM block", ErrKeyImport)
	}

	switch block.Type {
	case pemTypePrivate:
		privKey, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse PKCS8 private key: %v", ErrKeyImport, err)
		}

		rsaKey, ok := privKey.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: key is not an RSA private key, got %T", ErrKeyImport, privKey)
		}

		return NewPrivateKey(rsaKey), nil

	case pemTypePrivatePKCS1:
		rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse PKCS1 private key: %v", ErrKeyImport, err)
		}

		return NewPrivateKey(rsaKey), nil
	}

	return nil, fmt.Errorf("%w: unsupported PEM block type %q (expected %q or %q)",
		ErrKeyImport, block.Type, pemTypePrivate, pemTypePrivatePKCS1)
}
