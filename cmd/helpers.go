package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/profile"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/version"
)

func printVersion(verbose bool) {
	fmt.Println("Asymcrypt version: ", version.Version, runtime.GOOS+"/"+runtime.GOARCH)
	if verbose {
		fmt.Println("  Commit: ", version.Commit)
		fmt.Println("  Built:  ", version.BuildDate)
		fmt.Println("  Go:     ", runtime.Version())
	}
}

// loadProfile returns the defaults from the file given with --profile, or the
// built-in defaults when no profile file was given.
func loadProfile() (profile.Profile, error) {
	if profileFile == "" {
		return profile.Default(), nil
	}
	return profile.Load(profileFile)
}

// readInput reads the whole of path, or of stdin when path is "-" or empty.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or to stdout when path is "-" or empty.
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
