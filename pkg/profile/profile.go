package profile

import (
	"fmt"
	"net/url"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
)

// Ciphertext formats understood by the CLI. "rsa" is direct RSA-OAEP with the
// base64 transport message; the other two are envelope formats for payloads
// larger than a single RSA block.
const (
	FormatRSA      = "rsa"
	FormatEnvelope = "envelope"
	FormatJWE      = "jwe"
)

// Profile wraps the defaults a user can put in a YAML file instead of passing
// flags on every invocation. Flags always take precedence over the profile.
type Profile struct {
	// Bits is the default modulus size for key generation.
	Bits int `yaml:"bits"`
	// Format is the default ciphertext format: rsa, envelope or jwe.
	Format string `yaml:"format"`
	// KeyID is the default key identifier for JWE payloads and served JWKS
	// documents.
	KeyID string `yaml:"key-id,omitempty"`
	// PublicKey and PrivateKey are default key file paths.
	PublicKey  string `yaml:"public-key,omitempty"`
	PrivateKey string `yaml:"private-key,omitempty"`
	// JWKSURL is the default endpoint for fetching remote public keys.
	JWKSURL string `yaml:"jwks-url,omitempty"`
}

// Dump generates a YAML string of the Profile object
func (p *Profile) Dump() (string, error) {
	d, err := yaml.Marshal(&p)

	if err != nil {
		return "", errors.Wrap(err, "failed to generate YAML dump of profile")
	}

	return string(d), nil
}

func (p *Profile) validate() error {
	var result *multierror.Error

	if p.Bits < keypair.MinModulusBits {
		result = multierror.Append(result, fmt.Errorf("bits must be at least %d, got %d", keypair.MinModulusBits, p.Bits))
	}

	switch p.Format {
	case FormatRSA, FormatEnvelope, FormatJWE:
	default:
		result = multierror.Append(result, fmt.Errorf("format must be one of %q, %q or %q, got %q",
			FormatRSA, FormatEnvelope, FormatJWE, p.Format))
	}

	if p.JWKSURL != "" {
		parsed, err := url.Parse(p.JWKSURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			result = multierror.Append(result, fmt.Errorf("jwks-url must be an http or https URL, got %q", p.JWKSURL))
		}
	}

	return result.ErrorOrNil()
}

// Parse reads profile data into a struct used to default the CLI flags.
// Missing fields are filled with the package defaults before validation.
func Parse(data []byte) (Profile, error) {
	var p Profile

	err := yaml.Unmarshal(data, &p)
	if err != nil {
		return p, err
	}

	if p.Bits == 0 {
		p.Bits = keypair.DefaultModulusBits
	}

	if p.Format == "" {
		p.Format = FormatRSA
	}

	if err = p.validate(); err != nil {
		return p, err
	}

	return p, nil
}

// Load reads and parses a profile file from disk.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errors.Wrap(err, "failed to read profile file")
	}

	return Parse(data)
}

// Default returns the profile used when no file is given.
func Default() Profile {
	return Profile{
		Bits:   keypair.DefaultModulusBits,
		Format: FormatRSA,
	}
}
