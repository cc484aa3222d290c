package middleware

import (
	"api"
	"api/internal/api/handler/response"
	"api/internal/api/service"
	"api/pkg"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthRequired verifies the bearer token against the Clerk JWKS and resolves
// the local user row, creating it on first sight.
func AuthRequired(cfg api.AppConfig) gin.HandlerFunc {
	userService := service.NewUserService()
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			unauthorized(c, "Authorization header required")
			return
		}

		claims, err := pkg.VerifyToken(token, cfg.ClerkConfig.JWKSUrl, cfg.ClerkConfig.Issuer)
		if err != nil {
			if errors.Is(err, pkg.ErrJWKSNotConfigured) {
				api.Logger.Error().Err(err).Msg("JWKS endpoint is not configured")
				c.JSON(http.StatusInternalServerError, response.APIError{Message: "Authentication service error"})
				c.Abort()
				return
			}
			unauthorized(c, err.Error())
			return
		}

		identity := pkg.ExtractIdentity(claims)
		if identity.ClerkUserID == "" {
			unauthorized(c, "Invalid token: missing user ID")
			return
		}

		user, err := userService.GetOrCreateByClerkID(identity.ClerkUserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.APIError{Message: "User lookup failed"})
			c.Abort()
			return
		}

		pkg.SetCurrentUser(c, user)
		c.Next()
	}
}

// AuthOptional records the caller identity when a valid bearer token is
// present and stays silent otherwise. Only the auth error taxonomy is
// swallowed; anything else still fails the request.
func AuthOptional(cfg api.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := pkg.VerifyToken(token, cfg.ClerkConfig.JWKSUrl, cfg.ClerkConfig.Issuer)
		if err != nil {
			if isAuthError(err) {
				api.Logger.Debug().Err(err).Msg("Invalid or expired token in request")
				c.Next()
				return
			}
			c.JSON(http.StatusInternalServerError, response.APIError{Message: "Authentication service error"})
			c.Abort()
			return
		}

		identity := pkg.ExtractIdentity(claims)
		if identity.ClerkUserID != "" {
			pkg.SetIdentity(c, identity)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Bearer token format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func isAuthError(err error) bool {
	var invalidToken *pkg.InvalidTokenError
	var keyFetch *pkg.KeyFetchError
	return errors.As(err, &invalidToken) ||
		errors.As(err, &keyFetch) ||
		errors.Is(err, pkg.ErrJWKSNotConfigured)
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, response.APIError{Message: message})
	c.Abort()
}
