package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/logs"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asymcrypt",
	Short: "RSA-OAEP key exchange and encryption toolbox 🔐",
	Long: `Asymcrypt generates RSA key pairs, exchanges public keys as PEM files
or JWKS documents, and encrypts or decrypts payloads with RSA-OAEP (SHA-256),
optionally wrapped in an AES-256-GCM envelope or a JWE compact token.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logs.Initialize()
	},
}

// profileFile points at an optional YAML file with defaults for the flags
// shared by several subcommands. Flags set on the command line win.
var profileFile string

func init() {
	rootCmd.PersistentFlags().StringVar(
		&profileFile,
		"profile",
		"",
		"Path of a YAML file with default values for bits, format, key paths and the JWKS URL.",
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logs.AddFlags(rootCmd.PersistentFlags())

	for _, command := range rootCmd.Commands() {
		setFlagsFromEnv("ASYMCRYPT_", command.Flags())
	}

	err := rootCmd.Execute()
	logs.Flush()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setFlagsFromEnv(prefix string, fs *pflag.FlagSet) {
	set := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) {
		set[f.Name] = true
	})
	fs.VisitAll(func(f *pflag.Flag) {
		// ignore flags set from the commandline
		if set[f.Name] {
			return
		}
		// remove trailing _ to reduce common errors with the prefix, i.e. people setting it to MY_PROG_
		cleanPrefix := strings.TrimSuffix(prefix, "_")
		name := fmt.Sprintf("%s_%s", cleanPrefix, strings.Replace(strings.ToUpper(f.Name), "-", "_", -1))
		if e, ok := os.LookupEnv(name); ok {
			_ = f.Value.Set(e)
		}
	})
}
