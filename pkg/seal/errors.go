package seal

import "errors"

// Sentinel errors for the cipher service, wrapped with fmt.Errorf("%w: ...") at
// the point of failure.
var (
	// ErrEncryption is returned when plaintext exceeds the OAEP capacity of the
	// key, or the handle is not a usable encryption key.
	ErrEncryption = errors.New("seal: encryption failed")

	// ErrDecryption is returned when the ciphertext was not produced under the
	// matching key pair, has the wrong length, or the recovered bytes are not
	// valid UTF-8.
	ErrDecryption = errors.New("seal: decryption failed")

	// ErrInvalidEncoding is returned when a transport Message carries an
	// unsupported encoding marker or a payload that is not valid base64.
	ErrInvalidEncoding = errors.New("seal: invalid ciphertext encoding")
)
