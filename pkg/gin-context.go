package pkg

import (
	"api/internal/api/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	currentUserKey  = "currentUser"
	authIdentityKey = "authIdentity"
)

func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(currentUserKey, user)
}

// GetCurrentUser returns the authenticated user placed in the context by the
// auth middleware. Responds 401 and aborts when it is missing.
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
		c.Abort()
		return models.User{}, false
	}
	user, ok := value.(models.User)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
		c.Abort()
		return models.User{}, false
	}
	return user, true
}

func SetIdentity(c *gin.Context, identity Identity) {
	c.Set(authIdentityKey, identity)
}

// GetIdentity returns the verified token identity set by the optional auth
// middleware, if any.
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(authIdentityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
