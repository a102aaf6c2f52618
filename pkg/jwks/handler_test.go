package jwks_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/jwks"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keyfetch"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/seal"
)

var (
	testPairOnce sync.Once
	testPair     *keypair.KeyPair
)

// testKeyPair generates and returns a singleton key pair, to avoid generating a
// new pair for each test.
func testKeyPair() *keypair.KeyPair {
	testPairOnce.Do(func() {
		pair, err := keypair.Generate(keypair.DefaultModulusBits)
		if err != nil {
			panic("failed to generate test key pair: " + err.Error())
		}

		testPair = pair
	})

	return testPair
}

func TestNewHandler_Validation(t *testing.T) {
	pair := testKeyPair()

	tests := []struct {
		name    string
		entries []jwks.Entry
		wantErr string
	}{
		{
			name:    "no entries",
			entries: nil,
			wantErr: "at least one key entry is required",
		},
		{
			name:    "missing key ID",
			entries: []jwks.Entry{{KeyID: "", Key: pair.Public}},
			wantErr: "missing a key ID",
		},
		{
			name:    "nil key",
			entries: []jwks.Entry{{KeyID: "key-1", Key: nil}},
			wantErr: "public key handle is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := jwks.NewHandler(tt.entries...)
			require.Error(t, err)
			require.Nil(t, h)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewHandler_RejectsSmallKeys(t *testing.T) {
	// 1024-bit public key, far below the floor.
	const smallRSAKey1024 = `-----BEGIN PUBLIC KEY-----
MIGfMA0GCSqGSIb3DQEBAQUAA4GNADCBiQKBgQDCNDoCM0OBt4HFxFxyU50FYsuZ
gK+lgel/Jlzb+ghkWpCL1Vk3Au7aet4KxNxQh5dFRxtMU7pe6fC5eZtdL3+0TCUu
XAUVgMhTRn3ZXlEmJXosuiFQ2y4+3nbWL51OxXRf3jsieSVqr4fbceakuOKXp4vX
wgiguV3/XqaysHs1uwIDAQAB
-----END PUBLIC KEY-----`

	small, err := keypair.ImportPublicPEM(smallRSAKey1024)
	require.NoError(t, err)

	h, err := jwks.NewHandler(jwks.Entry{KeyID: "small", Key: small})
	require.Error(t, err)
	require.Nil(t, h)
	assert.Contains(t, err.Error(), "must be at least 2048 bits")
}

func TestHandler_ServesKeySet(t *testing.T) {
	pair := testKeyPair()

	h, err := jwks.NewHandler(jwks.Entry{KeyID: "key-1", Key: pair.Public})
	require.NoError(t, err)

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var doc struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	require.Len(t, doc.Keys, 1)

	key := doc.Keys[0]
	assert.Equal(t, "RSA", key["kty"])
	assert.Equal(t, "enc", key["use"])
	assert.Equal(t, "RSA-OAEP-256", key["alg"])
	assert.Equal(t, "key-1", key["kid"])
	assert.NotEmpty(t, key["n"])
	assert.NotEmpty(t, key["e"])
}

func TestHandler_MultipleKeys(t *testing.T) {
	pair := testKeyPair()

	other, err := keypair.Generate(keypair.DefaultModulusBits)
	require.NoError(t, err)

	h, err := jwks.NewHandler(
		jwks.Entry{KeyID: "key-1", Key: pair.Public},
		jwks.Entry{KeyID: "key-2", Key: other.Public},
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Keys, 2)
	assert.Equal(t, "key-1", doc.Keys[0]["kid"])
	assert.Equal(t, "key-2", doc.Keys[1]["kid"])
}

func TestHandler_RejectsNonGET(t *testing.T) {
	pair := testKeyPair()

	h, err := jwks.NewHandler(jwks.Entry{KeyID: "key-1", Key: pair.Public})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

// TestServeFetchRoundTrip wires the serve side to the fetch side: a key pair is
// published as a JWKS document, fetched back over HTTP, and the fetched handle
// is used to encrypt a message that the original private key must decrypt.
func TestServeFetchRoundTrip(t *testing.T) {
	pair := testKeyPair()

	h, err := jwks.NewHandler(jwks.Entry{KeyID: "round-trip-key", Key: pair.Public})
	require.NoError(t, err)

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	client, err := keyfetch.NewClient(server.URL, nil)
	require.NoError(t, err)

	fetched, err := client.FetchKey(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "round-trip-key", fetched.KeyID)

	// The fetched handle must carry the same key material.
	wantPrint, err := pair.Public.Fingerprint()
	require.NoError(t, err)
	gotPrint, err := fetched.Key.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, wantPrint, gotPrint)

	ciphertext, err := seal.Encrypt(fetched.Key, []byte("Hello, World!"))
	require.NoError(t, err)

	plaintext, err := seal.Decrypt(pair.Private, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", plaintext)
}
