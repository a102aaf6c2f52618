// Package aesgcm implements the raw wrapped-key envelope format: a fresh
// AES-256 key per operation, the payload sealed with AES-256-GCM, and the AES
// key wrapped with RSA-OAEP/SHA-256. The output is the concatenation
// wrappedKey || nonce || ciphertext, carried in an envelope.EncryptedData
// frame.
//
// Use pkg/envelope/jwe instead when the payload must interoperate with JOSE
// tooling; this format is smaller but private to this toolkit.
package aesgcm
