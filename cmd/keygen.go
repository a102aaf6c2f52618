package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an RSA key pair as a pair of PEM files",
	Long: `Generates an RSA key pair for RSA-OAEP (SHA-256) encryption and writes
it out as two PEM files: the SPKI public key and the PKCS #8 private key.

Existing key files are never overwritten unless --force is given.`,
	RunE: keygen,
}

var keygenFlags struct {
	Bits       int
	PublicOut  string
	PrivateOut string
	Force      bool
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().IntVar(
		&keygenFlags.Bits,
		"bits",
		0,
		fmt.Sprintf("Modulus size in bits of the generated key pair. Defaults to the profile's bits (%d).", keypair.DefaultModulusBits),
	)
	keygenCmd.Flags().StringVar(
		&keygenFlags.PublicOut,
		"public-out",
		"",
		`Path of the public key PEM file to write. Defaults to the profile's public-key ("public.pem").`,
	)
	keygenCmd.Flags().StringVar(
		&keygenFlags.PrivateOut,
		"private-out",
		"",
		`Path of the private key PEM file to write. Defaults to the profile's private-key ("private.pem").`,
	)
	keygenCmd.Flags().BoolVar(
		&keygenFlags.Force,
		"force",
		false,
		"Overwrite existing key files.",
	)
}

func keygen(cmd *cobra.Command, args []string) error {
	prof, err := loadProfile()
	if err != nil {
		return err
	}

	bits := keygenFlags.Bits
	if bits == 0 {
		bits = prof.Bits
	}
	publicOut := keygenFlags.PublicOut
	if publicOut == "" {
		publicOut = prof.PublicKey
	}
	if publicOut == "" {
		publicOut = "public.pem"
	}
	privateOut := keygenFlags.PrivateOut
	if privateOut == "" {
		privateOut = prof.PrivateKey
	}
	if privateOut == "" {
		privateOut = "private.pem"
	}

	pair, err := keypair.GeneratePEM(bits)
	if err != nil {
		return err
	}

	// The private key is written first so that a failure can't leave a public
	// key behind whose private half was never persisted.
	if err := writeKeyFile(privateOut, []byte(pair.Private), 0o600, keygenFlags.Force); err != nil {
		return err
	}
	if err := writeKeyFile(publicOut, []byte(pair.Public), 0o644, keygenFlags.Force); err != nil {
		return err
	}

	klog.FromContext(cmd.Context()).Info("wrote key pair", "bits", bits, "public", publicOut, "private", privateOut)
	return nil
}

func writeKeyFile(path string, data []byte, mode os.FileMode, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, mode)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s already exists, use --force to overwrite it", path)
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
