package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keyfetch"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a public key from a JWKS endpoint",
	Long: `Fetches the first suitable RSA encryption key from a JWKS endpoint and
writes it out as a public key PEM file, ready for the encrypt subcommand.`,
	RunE: fetch,
}

var fetchFlags struct {
	URL string
	Out string
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(
		&fetchFlags.URL,
		"url",
		"",
		"URL of the JWKS endpoint. Defaults to the profile's jwks-url.",
	)
	fetchCmd.Flags().StringVar(
		&fetchFlags.Out,
		"out",
		"-",
		"Path of the public key PEM file to write, - for stdout.",
	)
}

func fetch(cmd *cobra.Command, args []string) error {
	prof, err := loadProfile()
	if err != nil {
		return err
	}

	jwksURL := fetchFlags.URL
	if jwksURL == "" {
		jwksURL = prof.JWKSURL
	}
	if jwksURL == "" {
		return fmt.Errorf("no JWKS URL given, use --url or the profile's jwks-url")
	}

	client, err := keyfetch.NewClient(jwksURL, nil)
	if err != nil {
		return err
	}
	key, err := client.FetchKey(cmd.Context())
	if err != nil {
		return err
	}

	keyPEM, err := keypair.ExportPublicPEM(key.Key)
	if err != nil {
		return err
	}

	klog.FromContext(cmd.Context()).Info("fetched key", "kid", key.KeyID, "bits", key.Key.Bits())
	return writeOutput(fetchFlags.Out, []byte(keyPEM))
}
