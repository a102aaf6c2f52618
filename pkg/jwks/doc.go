// Package jwks serves public encryption keys over HTTP in JSON Web Key Set
// (JWKS) format, so that remote encrypting parties can fetch them with
// pkg/keyfetch.
//
// The handler is read-only and the key set is fixed at construction; rotating
// keys means constructing a new handler. Private keys never pass through this
// package.
//
// This package uses github.com/lestrrat-go/jwx/v3/jwk to build the key set.
package jwks
