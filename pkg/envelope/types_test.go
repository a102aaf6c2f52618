package envelope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/envelope"
)

func TestEncryptedData_ToMap(t *testing.T) {
	ed := &envelope.EncryptedData{
		Data: []byte{0x01, 0x02, 0x03},
		Type: "RSA-OAEP-AES-GCM",
	}

	out := ed.ToMap()
	require.NotNil(t, out)
	require.Equal(t, "RSA-OAEP-AES-GCM", out["type"])

	// []byte marshals to base64 text in JSON.
	require.Equal(t, "AQID", out["data"])
}
