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

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a payload with a private key",
	Long: `Decrypts a payload produced by the encrypt subcommand. The --format flag
must name the format the payload was encrypted with.`,
	RunE: decrypt,
}

var decryptFlags struct {
	Key    string
	In     string
	Out    string
	Format string
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().StringVar(
		&decryptFlags.Key,
		"key",
		"",
		"Path of the private key PEM file. Defaults to the profile's private-key.",
	)
	decryptCmd.Flags().StringVar(
		&decryptFlags.In,
		"in",
		"-",
		"Path of the ciphertext input, - for stdin.",
	)
	decryptCmd.Flags().StringVar(
		&decryptFlags.Out,
		"out",
		"-",
		"Path of the plaintext output, - for stdout.",
	)
	decryptCmd.Flags().StringVar(
		&decryptFlags.Format,
		"format",
		"",
		`Ciphertext format: "rsa", "envelope" or "jwe". Defaults to the profile's format ("rsa").`,
	)
}

func decrypt(cmd *cobra.Command, args []string) error {
	prof, err := loadProfile()
	if err != nil {
		return err
	}

	keyFile := decryptFlags.Key
	if keyFile == "" {
		keyFile = prof.PrivateKey
	}
	if keyFile == "" {
		return fmt.Errorf("no private key given, use --key or the profile's private-key")
	}
	format := decryptFlags.Format
	if format == "" {
		format = prof.Format
	}

	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return err
	}
	input, err := readInput(decryptFlags.In)
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case profile.FormatRSA:
		var msg seal.Message
		if err := json.Unmarshal(input, &msg); err != nil {
			return fmt.Errorf("input is not a ciphertext message: %w", err)
		}
		plaintext, err := seal.DecryptPEM(msg, string(keyPEM))
		if err != nil {
			return err
		}
		out = []byte(plaintext)

	case profile.FormatEnvelope, profile.FormatJWE:
		privateKey, err := keypair.ImportPrivatePEM(string(keyPEM))
		if err != nil {
			return err
		}

		var encrypted envelope.EncryptedData
		if err := json.Unmarshal(input, &encrypted); err != nil {
			return fmt.Errorf("input is not an encrypted payload: %w", err)
		}

		var decryptor envelope.Decryptor
		if format == profile.FormatEnvelope {
			decryptor, err = aesgcm.NewDecryptor(privateKey)
		} else {
			decryptor, err = jwe.NewDecryptor(privateKey)
		}
		if err != nil {
			return err
		}

		out, err = decryptor.Decrypt(cmd.Context(), &encrypted)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown format %q, expected rsa, envelope or jwe", format)
	}

	return writeOutput(decryptFlags.Out, out)
}
