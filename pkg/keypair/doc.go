// Package keypair implements the key half of the toolkit: generation of RSA key
// pairs bound to RSA-OAEP with SHA-256, and the portable PEM text encodings (SPKI
// for public keys, PKCS8 for private keys) of that material.
//
// Keys are handed out as opaque handles (PublicKey, PrivateKey) wrapping the
// platform key object together with algorithm, hash and usage tags. Handles are
// immutable and are never serialized directly; crossing a text boundary always
// goes through the explicit export/import functions, which is what keeps the PEM
// representation and the handle representation interchangeable.
//
// All cryptographic work is delegated to the platform provider (crypto/rsa,
// crypto/x509). This package only shapes parameters and encodes/decodes text.
package keypair
