package jwks

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"k8s.io/klog/v2"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
)

// Entry is one public key to publish, together with the key ID that
// encrypting parties will see in the JWKS document and place in the "kid"
// header of payloads they produce.
type Entry struct {
	KeyID string
	Key   *keypair.PublicKey
}

// handler serves a fixed JWKS document.
type handler struct {
	body []byte
}

// NewHandler builds an http.Handler that serves the given public keys as a
// JWKS document. Every entry must carry a key ID and an encrypt-capable key of
// at least keypair.MinModulusBits bits; the keys are converted to JWK form
// once, at construction.
func NewHandler(entries ...Entry) (http.Handler, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("at least one key entry is required")
	}

	set := jwk.NewSet()

	for i, entry := range entries {
		if entry.KeyID == "" {
			return nil, fmt.Errorf("entry %d/%d is missing a key ID", i+1, len(entries))
		}

		if entry.Key.Key() == nil {
			return nil, fmt.Errorf("entry %d/%d (%s): public key handle is empty", i+1, len(entries), entry.KeyID)
		}

		if keySize := entry.Key.Bits(); keySize < keypair.MinModulusBits {
			return nil, fmt.Errorf("entry %d/%d (%s): RSA key size must be at least %d bits, got %d bits",
				i+1, len(entries), entry.KeyID, keypair.MinModulusBits, keySize)
		}

		key, err := jwk.Import(entry.Key.Key())
		if err != nil {
			return nil, fmt.Errorf("entry %d/%d (%s): failed to convert key to JWK: %w", i+1, len(entries), entry.KeyID, err)
		}

		if err := key.Set(jwk.KeyIDKey, entry.KeyID); err != nil {
			return nil, fmt.Errorf("failed to set key ID: %w", err)
		}

		if err := key.Set(jwk.KeyUsageKey, jwk.ForEncryption.String()); err != nil {
			return nil, fmt.Errorf("failed to set key usage: %w", err)
		}

		if err := key.Set(jwk.AlgorithmKey, jwa.RSA_OAEP_256()); err != nil {
			return nil, fmt.Errorf("failed to set key algorithm: %w", err)
		}

		if err := set.AddKey(key); err != nil {
			return nil, fmt.Errorf("failed to add key %s to set: %w", entry.KeyID, err)
		}
	}

	body, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JWKS document: %w", err)
	}

	return &handler{body: body}, nil
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := klog.FromContext(r.Context()).WithName("jwks")

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, fmt.Sprintf(`{"error": "method %s not allowed"}`, r.Method), http.StatusMethodNotAllowed)
		return
	}

	logger.V(2).Info("serving key set", "remote", r.RemoteAddr)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.body)
}
