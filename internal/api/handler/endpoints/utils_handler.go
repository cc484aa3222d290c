package endpoints

import (
	"api/internal/api/handler/response"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func UtilsHandler(router *graceful.Graceful) {
	routes := router.Group("/api/v1/utils")
	{
		routes.GET("/health-check", healthCheck)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthCheck{Status: "ok"})
}
