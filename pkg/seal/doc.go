// Package seal implements the cipher half of the toolkit: direct RSA-OAEP
// encryption and decryption under key handles from pkg/keypair, plus the base64
// transport encoding used to move ciphertext through text-only channels.
//
// Every function is a pure request/response transform. The package holds no
// state, performs no locking and no retries, and is safe for arbitrary
// concurrent use; failures always surface as errors wrapping one of the package
// sentinels, never as garbled output.
//
// RSA-OAEP bounds plaintext size by the key modulus (see Capacity); callers
// with larger payloads should use pkg/envelope instead.
package seal
