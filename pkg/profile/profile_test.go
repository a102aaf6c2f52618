package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/testutil"
)

func TestParse(t *testing.T) {
	t.Run("empty input yields the defaults", func(t *testing.T) {
		got, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, Default(), got)
	})

	t.Run("all fields set", func(t *testing.T) {
		got, err := Parse([]byte(testutil.Undent(`
			bits: 3072
			format: jwe
			key-id: team-a
			public-key: /keys/pub.pem
			private-key: /keys/priv.pem
			jwks-url: https://keys.example.com/jwks
		`)))
		require.NoError(t, err)
		assert.Equal(t, Profile{
			Bits:       3072,
			Format:     FormatJWE,
			KeyID:      "team-a",
			PublicKey:  "/keys/pub.pem",
			PrivateKey: "/keys/priv.pem",
			JWKSURL:    "https://keys.example.com/jwks",
		}, got)
	})

	t.Run("bits below the floor are rejected", func(t *testing.T) {
		_, err := Parse([]byte(testutil.Undent(`
			bits: 1024
		`)))
		assert.EqualError(t, err, "1 error occurred:\n\t* bits must be at least 2048, got 1024\n\n")
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		_, err := Parse([]byte(testutil.Undent(`
			format: pgp
		`)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `format must be one of "rsa", "envelope" or "jwe", got "pgp"`)
	})

	t.Run("malformed jwks-url is rejected", func(t *testing.T) {
		_, err := Parse([]byte(testutil.Undent(`
			jwks-url: keys.example.com/jwks
		`)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwks-url must be an http or https URL")
	})

	t.Run("multiple problems are reported together", func(t *testing.T) {
		_, err := Parse([]byte(testutil.Undent(`
			bits: 512
			format: pgp
		`)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 errors occurred")
		assert.Contains(t, err.Error(), "bits must be at least 2048")
		assert.Contains(t, err.Error(), "format must be one of")
	})

	t.Run("not yaml at all", func(t *testing.T) {
		_, err := Parse([]byte("\t{{{"))
		require.Error(t, err)
	})
}

func TestDump_RoundTrip(t *testing.T) {
	original := Profile{
		Bits:    3072,
		Format:  FormatEnvelope,
		KeyID:   "team-b",
		JWKSURL: "https://keys.example.com/jwks",
	}

	dumped, err := original.Dump()
	require.NoError(t, err)

	parsed, err := Parse([]byte(dumped))
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestLoad(t *testing.T) {
	t.Run("reads a profile from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testutil.Undent(`
			bits: 2048
			format: rsa
		`)), 0o644))

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2048, got.Bits)
		assert.Equal(t, FormatRSA, got.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read profile file")
	})
}
