package keypair

import "errors"

// Sentinel errors for the key service. Call sites wrap these with
// fmt.Errorf("%w: ...") so errors.Is reports the kind while the message keeps the
// failing detail.
var (
	// ErrKeyGeneration is returned when the platform provider refuses the
	// requested key parameters or fails to produce a key pair.
	ErrKeyGeneration = errors.New("keypair: key generation failed")

	// ErrExport is returned when a handle cannot be serialized, for example
	// because it is nil or carries no key material.
	ErrExport = errors.New("keypair: key export failed")

	// ErrKeyImport is returned when PEM text cannot be turned back into a
	// handle: missing or mismatched BEGIN/END markers, corrupt base64, or key
	// material the provider rejects.
	ErrKeyImport = errors.New("keypair: key import failed")
)
