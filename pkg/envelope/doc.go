// Package envelope defines the interfaces and data frame for RSA envelope
// encryption, used when a payload is larger than a single RSA-OAEP block can
// carry.
//
// Envelope encryption combines asymmetric and symmetric encryption: since RSA
// is slow and caps plaintext size at the OAEP capacity of the key, a fresh
// random symmetric key is generated per operation, the payload is encrypted
// with it, and the symmetric key is wrapped with the recipient's RSA public
// key. The recipient unwraps the symmetric key with their RSA private key and
// then decrypts the payload.
//
// In some documentation the asymmetric key is called the "key encryption key"
// (KEK) and the symmetric key the "data encryption key" (DEK).
//
// Two implementations conform to the interfaces here: pkg/envelope/aesgcm (a
// compact raw framing private to this toolkit) and pkg/envelope/jwe (JWE
// Compact Serialization for interchange with JOSE tooling).
package envelope
