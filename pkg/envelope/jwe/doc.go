// Package jwe implements RSA envelope encryption in JWE Compact Serialization
// format, conforming to the interfaces in the envelope package. It uses
// RSA-OAEP-256 for key encryption and AES-256-GCM for content encryption.
//
// Use this format when the payload has to interoperate with JOSE tooling or
// carry a key ID for routing; pkg/envelope/aesgcm produces a smaller frame but
// is private to this toolkit.
//
// This package uses github.com/lestrrat-go/jwx/v3 for all JWE handling.
package jwe
