package endpoints

import (
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

// UserHandler is a placeholder until account management lands.
func UserHandler(router *graceful.Graceful) {
	routes := router.Group("/api/v1/users/me")
	{
		routes.GET("", userPlaceholder)
	}
}

func userPlaceholder(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "This is a placeholder for user routes."})
}
