package seal

import (
	"encoding/base64"
	"fmt"
)

// EncodingBase64 is the only transport encoding Message supports: standard
// RFC 4648 base64 with padding.
const EncodingBase64 = "base64"

// Message is the transport form of a ciphertext: base64 text plus an encoding
// marker, so the payload survives JSON and other text-only channels intact.
type Message struct {
	Ciphertext string `json:"ciphertext"`
	Encoding   string `json:"encoding"`
}

// NewMessage wraps raw ciphertext bytes in a base64 transport Message.
func NewMessage(ciphertext []byte) Message {
	return Message{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Encoding:   EncodingBase64,
	}
}

// Bytes decodes the transport Message back to raw ciphertext bytes. It fails if
// the encoding marker is not "base64" or the payload is not valid base64.
func (m Message) Bytes() ([]byte, error) {
	if m.Encoding != EncodingBase64 {
		return nil, fmt.Errorf("%w: unsupported encoding %q (expected %q)", ErrInvalidEncoding, m.Encoding, EncodingBase64)
	}

	raw, err := base64.StdEncoding.DecodeString(m.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	return raw, nil
}
