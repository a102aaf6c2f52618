package cmd

import (
	"fmt"
	stdlog "log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/jwks"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/logs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a public key as a JWKS document",
	Long: `Starts an HTTP server that publishes the given public key as a JWKS
document, the format the fetch subcommand and the keyfetch package consume.`,
	RunE: serve,
}

var serveFlags struct {
	Listen string
	Key    string
	KeyID  string
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(
		&serveFlags.Listen,
		"listen",
		"l",
		":8444",
		"Address where to listen.",
	)
	serveCmd.Flags().StringVar(
		&serveFlags.Key,
		"key",
		"",
		"Path of the public key PEM file to serve. Defaults to the profile's public-key.",
	)
	serveCmd.Flags().StringVar(
		&serveFlags.KeyID,
		"key-id",
		"",
		"Key identifier published in the JWKS document. Defaults to the profile's key-id.",
	)
}

func serve(cmd *cobra.Command, args []string) error {
	prof, err := loadProfile()
	if err != nil {
		return err
	}

	keyFile := serveFlags.Key
	if keyFile == "" {
		keyFile = prof.PublicKey
	}
	if keyFile == "" {
		return fmt.Errorf("no public key given, use --key or the profile's public-key")
	}
	keyID := serveFlags.KeyID
	if keyID == "" {
		keyID = prof.KeyID
	}
	if keyID == "" {
		return fmt.Errorf("no key identifier given, use --key-id or the profile's key-id")
	}

	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return err
	}
	publicKey, err := keypair.ImportPublicPEM(string(keyPEM))
	if err != nil {
		return err
	}

	handler, err := jwks.NewHandler(jwks.Entry{KeyID: keyID, Key: publicKey})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              serveFlags.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          stdlog.New(logs.LogToSlogWriter{Slog: slog.Default(), Source: "jwks-server"}, "", 0),
	}

	fmt.Println("Serving JWKS at ", serveFlags.Listen, " with key id ", keyID)
	return server.ListenAndServe()
}
