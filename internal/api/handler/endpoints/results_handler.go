package endpoints

import (
	"api"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/response"
	"api/internal/api/service"
	"errors"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type resultsHandler struct {
	jobService *service.JobService
	config     api.AppConfig
	logger     zerolog.Logger
}

func newResultsHandler() *resultsHandler {
	return &resultsHandler{
		jobService: service.NewJobService(),
		config:     api.GetConfig(),
		logger:     api.Logger,
	}
}

// ResultsHandler wires the unauthenticated shared-results route. Auth is
// optional here: a bad token must not block a public lookup.
func ResultsHandler(router *graceful.Graceful) {
	h := newResultsHandler()

	routes := router.Group("/api/v1/jobs/results")
	routes.Use(middleware.AuthOptional(h.config))
	{
		routes.GET("/:shareableId", h.getPublicResults)
	}
}

func (slf *resultsHandler) getPublicResults(c *gin.Context) {
	shareableID, err := uuid.Parse(c.Param("shareableId"))
	if err != nil {
		// An unparseable shareable id is indistinguishable from an unknown one.
		c.JSON(http.StatusNotFound, response.APIError{Message: "Shared job not found or not public"})
		return
	}

	results, err := slf.jobService.PublicResults(shareableID)
	if err != nil {
		var notReadyErr *service.NotReadyError
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			c.JSON(http.StatusNotFound, response.APIError{Message: "Shared job not found or not public"})
		case errors.As(err, &notReadyErr):
			c.JSON(http.StatusBadRequest, response.APIError{Message: notReadyErr.Error()})
		default:
			slf.logger.Error().Err(err).Msg("Failed to get shared results")
			c.JSON(http.StatusInternalServerError, response.APIError{Message: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, results)
}
