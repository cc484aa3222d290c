package endpoints

import (
	"api"
	"api/internal/api/handler/mapper"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/models"
	"api/internal/api/service"
	"api/pkg"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type jobHandler struct {
	jobService *service.JobService
	config     api.AppConfig
	logger     zerolog.Logger
}

func newJobHandler() *jobHandler {
	return &jobHandler{
		jobService: service.NewJobService(),
		config:     api.GetConfig(),
		logger:     api.Logger,
	}
}

func JobHandler(router *graceful.Graceful) {
	h := newJobHandler()

	routes := router.Group("/api/v1/jobs")
	routes.Use(middleware.AuthRequired(h.config))
	{
		routes.POST("/individual", h.submitIndividual)
		routes.GET("", h.list)
		routes.GET("/:id", h.getByID)
		routes.GET("/:id/progress", h.progress)
		routes.GET("/:id/results", h.results)
		routes.DELETE("/:id", h.cancel)
		routes.POST("/:id/share", h.share)
	}
}

// renderError maps the service error taxonomy to HTTP status codes. Ownership
// failures are reported as plain not-found so existence never leaks.
func (slf *jobHandler) renderError(c *gin.Context, err error, logMsg string) {
	var validationErr *service.ValidationError
	var stateErr *service.StateTransitionError
	var notReadyErr *service.NotReadyError

	switch {
	case errors.Is(err, service.ErrJobNotFound):
		c.JSON(http.StatusNotFound, response.APIError{Message: "Job not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: validationErr.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusBadRequest, response.APIError{Message: stateErr.Error()})
	case errors.As(err, &notReadyErr):
		c.JSON(http.StatusBadRequest, response.APIError{Message: notReadyErr.Error()})
	default:
		slf.logger.Error().Err(err).Msg(logMsg)
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Internal server error"})
	}
}

func jobIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job ID"})
		return uuid.Nil, false
	}
	return id, true
}

// submitIndividual creates a pending job from 1-12 replay URLs.
func (slf *jobHandler) submitIndividual(c *gin.Context) {
	user, ok := pkg.GetCurrentUser(c)
	if !ok {
		return
	}

	var req request.SubmitIndividualJob
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.SubmitIndividual(req.URLs, user)
	if err != nil {
		slf.renderError(c, err, "Failed to submit individual job")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToJobResponse(*job))
}

func (slf *jobHandler) getByID(c *gin.Context) {
	user, ok := pkg.GetCurrentUser(c)
	if !ok {
		return
	}
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	job, err := slf.jobService.FindByIDForUser(id, user)
	if err != nil {
		slf.renderError(c, err, "Failed to get job")
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobResponse(*job))
}

func (slf *jobHandler) progress(c *gin.Context) {
	user, ok := pkg.GetCurrentUser(c)
	if !ok {
		return
	}
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	job, progress, err := slf.jobService.Progress(id, user)
	if err != nil {
		slf.renderError(c, err, "Failed to get job progress")
		return
	}

	c.JSON(http.StatusOK, response.JobProgress{
		JobID:              job.ID,
		Status:             job.Status,
		Processed:          progress.Processed,
		Total:              progress.Total,
		ProgressPercentage: progress.Percentage,
		ErrorMessage:       job.ErrorMessage,
	})
}

func (slf *jobHandler) results(c *gin.Context) {
	user, ok := pkg.GetCurrentUser(c)
	if !ok {
		return
	}
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	results, err := slf.jobService.Results(id, user)
	if err != nil {
		slf.renderError(c, err, "Failed to get job results")
		return
	}

	c.JSON(http.StatusOK, results)
}

func (slf *jobHandler) cancel(c *gin.Context) {
	user, ok := pkg.GetCurrentUser(c)
	if !ok {
		return
	}
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	if _, err := slf.jobService.Cancel(id, user); err != nil {
		slf.renderError(c, err, "Failed to cancel job")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (slf *jobHandler) share(c *gin.Context) {
	user, ok := pkg.GetCurrentUser(c)
	if !ok {
		return
	}
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req request.ShareJob
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: err.Error()})
		return
	}

	share, err := slf.jobService.SetSharing(id, user, *req.IsPublic)
	if err != nil {
		slf.renderError(c, err, "Failed to update job sharing")
		return
	}

	c.JSON(http.StatusOK, share)
}

func (slf *jobHandler) list(c *gin.Context) {
	user, ok := pkg.GetCurrentUser(c)
	if !ok {
		return
	}

	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 20)

	var status *models.JobStatus
	if raw := c.Query("status"); raw != "" {
		parsed, valid := models.ParseJobStatus(raw)
		if !valid {
			c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: "Invalid status filter"})
			return
		}
		status = &parsed
	}

	var jobType *models.JobType
	if raw := c.Query("job_type"); raw != "" {
		parsed, valid := models.ParseJobType(raw)
		if !valid {
			c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: "Invalid job_type filter"})
			return
		}
		jobType = &parsed
	}

	jobs, pagination, err := slf.jobService.List(user, page, perPage, status, jobType)
	if err != nil {
		slf.renderError(c, err, "Failed to list jobs")
		return
	}

	c.JSON(http.StatusOK, response.JobList{
		Jobs:       mapper.ToJobResponses(jobs),
		Total:      pagination.Total,
		Page:       pagination.Page,
		PerPage:    pagination.PerPage,
		TotalPages: pagination.TotalPages,
	})
}

func intQuery(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
