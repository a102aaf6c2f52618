package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/seal"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the properties of a PEM encoded key",
	Long: `Shows the role, algorithm, modulus size, single-block capacity and
fingerprint of a public or a private key PEM file.`,
	RunE: inspect,
}

var inspectKey string

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(
		&inspectKey,
		"key",
		"",
		"Path of the PEM file to inspect.",
	)
}

func inspect(cmd *cobra.Command, args []string) error {
	if inspectKey == "" {
		return fmt.Errorf("no key given, use --key")
	}
	keyPEM, err := os.ReadFile(inspectKey)
	if err != nil {
		return err
	}

	// A PEM file holds either a private or a public key, never both, so try
	// the private framing first and fall back to the public one.
	if privateKey, err := keypair.ImportPrivatePEM(string(keyPEM)); err == nil {
		fingerprint, err := privateKey.Fingerprint()
		if err != nil {
			return err
		}
		printKeyInfo("private", privateKey.Algorithm(), privateKey.Hash(), privateKey.Bits(), seal.Capacity(privateKey.Public()), fingerprint)
		return nil
	}

	publicKey, err := keypair.ImportPublicPEM(string(keyPEM))
	if err != nil {
		return fmt.Errorf("%s is neither a public nor a private key PEM file: %w", inspectKey, err)
	}
	fingerprint, err := publicKey.Fingerprint()
	if err != nil {
		return err
	}
	printKeyInfo("public", publicKey.Algorithm(), publicKey.Hash(), publicKey.Bits(), seal.Capacity(publicKey), fingerprint)
	return nil
}

func printKeyInfo(role, algorithm, hash string, bits, capacity int, fingerprint string) {
	fmt.Println("Role:        ", role)
	fmt.Println("Algorithm:   ", algorithm)
	fmt.Println("Hash:        ", hash)
	fmt.Println("Bits:        ", bits)
	fmt.Println("Capacity:    ", capacity, "bytes per block")
	fmt.Println("Fingerprint: ", fingerprint)
}
