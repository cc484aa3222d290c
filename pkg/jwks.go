package pkg

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync"
	"time"
)

const (
	jwksCacheDuration = time.Hour
	jwksFetchTimeout  = 10 * time.Second
)

type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type JWKS struct {
	Keys []JWK `json:"keys"`
}

// Process-wide signing-key cache. Expiry is purely time-based; a key rotated
// mid-window is not picked up until the cache expires.
var (
	jwksMu       sync.RWMutex
	jwksCache    *JWKS
	jwksCacheURL string
	jwksExpires  time.Time
)

// GetSigningKeys returns the identity provider's signing key set, fetching it
// at most once per cache window.
func GetSigningKeys(jwksURL string) (*JWKS, error) {
	if jwksURL == "" {
		return nil, ErrJWKSNotConfigured
	}

	jwksMu.RLock()
	if jwksCache != nil && jwksCacheURL == jwksURL && time.Now().Before(jwksExpires) {
		keys := jwksCache
		jwksMu.RUnlock()
		return keys, nil
	}
	jwksMu.RUnlock()

	jwksMu.Lock()
	defer jwksMu.Unlock()

	// Another caller may have refreshed the cache while we waited for the lock.
	if jwksCache != nil && jwksCacheURL == jwksURL && time.Now().Before(jwksExpires) {
		return jwksCache, nil
	}

	client := &http.Client{Timeout: jwksFetchTimeout}
	resp, err := client.Get(jwksURL)
	if err != nil {
		return nil, &KeyFetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &KeyFetchError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &KeyFetchError{Err: err}
	}

	var keys JWKS
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, &KeyFetchError{Err: fmt.Errorf("invalid JWKS response: %w", err)}
	}

	jwksCache = &keys
	jwksCacheURL = jwksURL
	jwksExpires = time.Now().Add(jwksCacheDuration)
	return jwksCache, nil
}

// ResetSigningKeyCache drops the cached key set. Used by tests; in production
// the cache lives until process exit.
func ResetSigningKeyCache() {
	jwksMu.Lock()
	defer jwksMu.Unlock()
	jwksCache = nil
	jwksCacheURL = ""
	jwksExpires = time.Time{}
}

func (slf *JWK) rsaPublicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(slf.N)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(slf.E)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}
	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}
