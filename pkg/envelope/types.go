package envelope

import (
	"context"
	"encoding/json"
)

// EncryptedData represents an encrypted payload along with metadata about the
// encryption format.
type EncryptedData struct {
	// Data contains the encrypted payload
	Data []byte `json:"data"`
	// Type indicates the encryption format (e.g. "RSA-OAEP-AES-GCM", "JWE-RSA")
	Type string `json:"type"`
}

// ToMap converts the EncryptedData struct to a map representation, for callers
// that need to embed the payload in loosely typed JSON documents.
func (ed *EncryptedData) ToMap() map[string]any {
	marshalled, err := json.Marshal(ed)
	if err != nil {
		return nil
	}

	var out map[string]any

	err = json.Unmarshal(marshalled, &out)
	if err != nil {
		return nil
	}

	return out
}

// Encryptor performs envelope encryption on arbitrary data.
type Encryptor interface {
	// Encrypt encrypts data using envelope encryption, returning an
	// EncryptedData struct containing the encrypted payload and encryption
	// type metadata.
	Encrypt(ctx context.Context, data []byte) (*EncryptedData, error)
}

// Decryptor opens payloads produced by the matching Encryptor.
type Decryptor interface {
	// Decrypt recovers the plaintext from an EncryptedData struct. The
	// struct's Type must match the format the decryptor implements.
	Decrypt(ctx context.Context, encrypted *EncryptedData) ([]byte, error)
}
