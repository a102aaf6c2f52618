package keyfetch

import (
	"context"
	"crypto/rsa"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"k8s.io/klog/v2"

	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/keypair"
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/pkg/version"
)

const (
	// keyAlgorithm is the only JWK "alg" value accepted from the key server;
	// everything this toolkit encrypts is bound to RSA-OAEP with SHA-256.
	keyAlgorithm = "RSA-OAEP-256"

	// cacheTTL is how long a fetched key is reused before the endpoint is
	// consulted again.
	cacheTTL = 15 * time.Minute

	// retryInterval and maxTries bound the retry loop around the HTTP fetch.
	// 4xx responses are not retried; see fetchKeySet.
	retryInterval = 2 * time.Second
	maxTries      = 3
)

// KeyFetcher is an interface for fetching public keys.
type KeyFetcher interface {
	// FetchKey retrieves a public key from the key source.
	FetchKey(ctx context.Context) (PublicKey, error)
}

// Compile-time check that Client implements KeyFetcher
var _ KeyFetcher = (*Client)(nil)

// PublicKey represents an RSA public key retrieved from the key server.
type PublicKey struct {
	// KeyID is the unique identifier for this key
	KeyID string

	// Key is the encrypt-only handle for the key
	Key *keypair.PublicKey
}

// Client fetches public keys from an HTTP endpoint that provides keys in JWKS
// format. It can be expanded in future to support other key types and formats,
// but for now it only supports RSA keys and ignores other types.
type Client struct {
	jwksURL string

	// httpClient is the HTTP client used for requests
	httpClient *http.Client

	cachedKey      PublicKey
	cachedKeyMutex sync.Mutex
	cachedKeyTime  time.Time
}

// NewClient creates a new key fetching client for the given JWKS endpoint URL.
// If httpClient is nil, a default HTTP client with a 10 second timeout is used.
func NewClient(jwksURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWKS URL %q: %w", jwksURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("JWKS URL %q must use http or https", jwksURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		jwksURL:    jwksURL,
		httpClient: httpClient,
	}, nil
}

// FetchKey retrieves the first valid RSA public key from the configured
// endpoint. Results are cached for cacheTTL, so callers can invoke FetchKey
// per operation without hammering the key server. Transient fetch failures
// are retried with a constant backoff; HTTP 4xx responses fail immediately.
func (c *Client) FetchKey(ctx context.Context) (PublicKey, error) {
	logger := klog.FromContext(ctx).WithName("keyfetch")
	c.cachedKeyMutex.Lock()
	defer c.cachedKeyMutex.Unlock()

	if time.Since(c.cachedKeyTime) < cacheTTL {
		logger.V(2).Info("using cached key", "fetchedAt", c.cachedKeyTime.Format(time.RFC3339Nano), "kid", c.cachedKey.KeyID)
		return c.cachedKey, nil
	}

	operation := func() (jwk.Set, error) {
		return c.fetchKeySet(ctx)
	}

	backoffPolicy := backoff.NewConstantBackOff(retryInterval)

	keySet, err := backoff.Retry(ctx, operation, backoff.WithBackOff(backoffPolicy), backoff.WithMaxTries(maxTries))
	if err != nil {
		return PublicKey{}, err
	}

	for i := range keySet.Len() {
		key, ok := keySet.Key(i)
		if !ok {
			continue
		}

		// Only process RSA keys
		if key.KeyType().String() != "RSA" {
			continue
		}

		var rawKey any
		if err := jwk.Export(key, &rawKey); err != nil {
			// skip unparseable keys
			continue
		}

		rsaKey, ok := rawKey.(*rsa.PublicKey)
		if !ok {
			// only process RSA public keys (for now)
			continue
		}

		if rsaKey.N.BitLen() < keypair.MinModulusBits {
			// skip keys that are too small to be secure
			continue
		}

		kid, ok := key.KeyID()
		if !ok {
			// skip any keys which don't have an ID
			continue
		}

		alg, ok := key.Algorithm()
		if !ok {
			// skip any keys which don't have an algorithm specified
			continue
		}

		if alg.String() != keyAlgorithm {
			// we only use RSA keys for RSA-OAEP-256
			continue
		}

		// return the first valid key we find

		logger.Info("fetched valid RSA key", "kid", kid)

		c.cachedKey = PublicKey{
			KeyID: kid,
			Key:   keypair.NewPublicKey(rsaKey),
		}
		c.cachedKeyTime = time.Now()

		return c.cachedKey, nil
	}

	return PublicKey{}, fmt.Errorf("no valid RSA keys found at %s", c.jwksURL)
}

// fetchKeySet performs a single GET of the JWKS document. It is the unit of
// work retried by FetchKey; 4xx responses are wrapped with backoff.Permanent
// because retrying a rejected request cannot help.
func (c *Client) fetchKeySet(ctx context.Context) (jwk.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.jwksURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	version.SetUserAgent(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch keys from %s: %w", c.jwksURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("unexpected status code %d from %s: %s", resp.StatusCode, c.jwksURL, string(body))

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// If we got a 4xx error, we shouldn't retry
			return nil, backoff.Permanent(err)
		}

		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	keySet, err := jwk.Parse(body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to parse JWKS response: %w", err))
	}

	return keySet, nil
}
