// Package keyfetch provides a client for fetching public encryption keys from
// an HTTP endpoint.
//
// The client retrieves public keys in JSON Web Key Set (JWKS) format from a
// remote server and converts them into keypair handles for encryption. The
// serve side of the same exchange lives in pkg/jwks.
//
// This package uses github.com/lestrrat-go/jwx/v3/jwk for JWK parsing and
// github.com/cenkalti/backoff/v5 for retrying transient fetch failures.
//
// Currently, keyfetch only supports RSA keys bound to RSA-OAEP-256.
package keyfetch
