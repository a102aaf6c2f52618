package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/envelope"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/envelope/aesgcm"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/envelope/jwe"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/profile"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/seal"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a payload for the holder of a public key",
	Long: `Encrypts a payload so that only the holder of the matching private key
can read it.

The "rsa" format encrypts the payload directly with RSA-OAEP (SHA-256) and
emits a base64 transport message; the payload must fit in a single RSA block.
The "envelope" and "jwe" formats encrypt payloads of any size with a fresh
AES-256-GCM key that is wrapped with the RSA key.`,
	RunE: encrypt,
}

var encryptFlags struct {
	Key    string
	In     string
	Out    string
	Format string
	KeyID  string
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().StringVar(
		&encryptFlags.Key,
		"key",
		"",
		"Path of the recipient's public key PEM file. Defaults to the profile's public-key.",
	)
	encryptCmd.Flags().StringVar(
		&encryptFlags.In,
		"in",
		"-",
		"Path of the plaintext input, - for stdin.",
	)
	encryptCmd.Flags().StringVar(
		&encryptFlags.Out,
		"out",
		"-",
		"Path of the ciphertext output, - for stdout.",
	)
	encryptCmd.Flags().StringVar(
		&encryptFlags.Format,
		"format",
		"",
		`Ciphertext format: "rsa", "envelope" or "jwe". Defaults to the profile's format ("rsa").`,
	)
	encryptCmd.Flags().StringVar(
		&encryptFlags.KeyID,
		"key-id",
		"",
		"Key identifier stored in the JWE protected header. Defaults to the profile's key-id.",
	)
}

func encrypt(cmd *cobra.Command, args []string) error {
	prof, err := loadProfile()
	if err != nil {
		return err
	}

	keyFile := encryptFlags.Key
	if keyFile == "" {
		keyFile = prof.PublicKey
	}
	if keyFile == "" {
		return fmt.Errorf("no public key given, use --key or the profile's public-key")
	}
	format := encryptFlags.Format
	if format == "" {
		format = prof.Format
	}
	keyID := encryptFlags.KeyID
	if keyID == "" {
		keyID = prof.KeyID
	}

	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return err
	}
	plaintext, err := readInput(encryptFlags.In)
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case profile.FormatRSA:
		msg, err := seal.EncryptPEM(string(plaintext), string(keyPEM))
		if err != nil {
			return err
		}
		out, err = json.Marshal(msg)
		if err != nil {
			return err
		}

	case profile.FormatEnvelope, profile.FormatJWE:
		publicKey, err := keypair.ImportPublicPEM(string(keyPEM))
		if err != nil {
			return err
		}

		var encryptor envelope.Encryptor
		if format == profile.FormatEnvelope {
			encryptor, err = aesgcm.NewEncryptor(publicKey)
		} else {
			encryptor, err = jwe.NewEncryptor(keyID, publicKey)
		}
		if err != nil {
			return err
		}

		encrypted, err := encryptor.Encrypt(cmd.Context(), plaintext)
		if err != nil {
			return err
		}
		out, err = json.Marshal(encrypted)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown format %q, expected rsa, envelope or jwe", format)
	}

	return writeOutput(encryptFlags.Out, out)
}
