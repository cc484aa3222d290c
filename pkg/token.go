package pkg

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the projection of verified claims this backend cares about.
type Identity struct {
	ClerkUserID   string
	EmailVerified bool
}

// VerifyToken verifies a bearer token against the cached Clerk JWKS and
// returns its claims. Clerk signs with RS256; expiry and issuer claims are
// required.
func VerifyToken(token string, jwksURL string, issuer string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, &InvalidTokenError{Reason: "Token is required"}
	}

	unverified, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, &InvalidTokenError{Reason: fmt.Sprintf("Token verification failed: %v", err)}
	}
	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, &InvalidTokenError{Reason: "Token missing key ID (kid)"}
	}

	keys, err := GetSigningKeys(jwksURL)
	if err != nil {
		return nil, err
	}

	var key *JWK
	for i := range keys.Keys {
		if keys.Keys[i].Kid == kid {
			key = &keys.Keys[i]
			break
		}
	}
	if key == nil {
		return nil, &InvalidTokenError{Reason: fmt.Sprintf("Key with ID %s not found in JWKS", kid)}
	}

	publicKey, err := key.rsaPublicKey()
	if err != nil {
		return nil, &InvalidTokenError{Reason: fmt.Sprintf("Token verification failed: %v", err)}
	}

	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (interface{}, error) { return publicKey, nil },
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &InvalidTokenError{Reason: "Token has expired"}
		}
		return nil, &InvalidTokenError{Reason: fmt.Sprintf("Token verification failed: %v", err)}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, &InvalidTokenError{Reason: "Token verification failed"}
	}
	return claims, nil
}

// ExtractIdentity projects verified claims into an Identity. Pure; no network
// or state access.
func ExtractIdentity(claims jwt.MapClaims) Identity {
	identity := Identity{}
	if sub, ok := claims["sub"].(string); ok {
		identity.ClerkUserID = sub
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	return identity
}
