package service

import (
	"api"
	"api/internal/api/handler/response"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/internal/events"
	"api/pkg"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	maxURLsPerIndividualJob = 12
	defaultPerPage          = 20
	maxPerPage              = 100

	publicResultsCacheTTL = time.Minute
)

var cancellableStatuses = []models.JobStatus{models.JobStatusPending, models.JobStatusRunning}

type JobService struct {
	jobRepo *repo.JobRepository
	results ResultsProvider
	logger  zerolog.Logger
}

func NewJobService() *JobService {
	return &JobService{
		jobRepo: repo.NewJobRepository(),
		results: PlaceholderResultsProvider{},
		logger:  api.Logger,
	}
}

// SubmitIndividual creates a pending individual job for the given URLs.
func (slf *JobService) SubmitIndividual(urls []string, user models.User) (*models.Job, error) {
	if len(urls) == 0 {
		return nil, &ValidationError{Message: "At least one URL is required"}
	}
	if len(urls) > maxURLsPerIndividualJob {
		return nil, &ValidationError{Message: fmt.Sprintf("Maximum %d URLs allowed per individual job", maxURLsPerIndividualJob)}
	}

	job := models.Job{
		JobType:       models.JobTypeIndividual,
		Status:        models.JobStatusPending,
		UserID:        user.ID,
		URLs:          urls,
		TotalURLs:     len(urls),
		ProcessedURLs: 0,
	}
	if err := slf.jobRepo.Create(&job); err != nil {
		slf.logger.Error().Err(err).Str("userId", user.ID.String()).Msg("Error creating job")
		return nil, err
	}

	events.PublishJobSubmitted(&job)
	return &job, nil
}

// FindByIDForUser retrieves a job owned by the user.
func (slf *JobService) FindByIDForUser(id uuid.UUID, user models.User) (*models.Job, error) {
	job, err := slf.jobRepo.FindByIDForUser(id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		slf.logger.Error().Err(err).Str("jobId", id.String()).Msg("Error getting job")
		return nil, err
	}
	return &job, nil
}

type JobProgress struct {
	Processed  int
	Total      int
	Percentage float64
}

// Progress returns the job together with its completion percentage, rounded
// to two decimals. A job with no URLs reports zero.
func (slf *JobService) Progress(id uuid.UUID, user models.User) (*models.Job, JobProgress, error) {
	job, err := slf.FindByIDForUser(id, user)
	if err != nil {
		return nil, JobProgress{}, err
	}

	var percentage float64
	if job.TotalURLs > 0 {
		percentage = math.Round(float64(job.ProcessedURLs)/float64(job.TotalURLs)*100*100) / 100
	}

	return job, JobProgress{
		Processed:  job.ProcessedURLs,
		Total:      job.TotalURLs,
		Percentage: percentage,
	}, nil
}

// Results builds the results view of a completed job.
func (slf *JobService) Results(id uuid.UUID, user models.User) (*response.JobResults, error) {
	job, err := slf.FindByIDForUser(id, user)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusCompleted {
		return nil, &NotReadyError{
			Current: job.Status,
			Message: fmt.Sprintf("Job is not completed. Current status: %s", job.Status),
		}
	}

	summary, detailedResults := slf.results.BuildResults(job)
	return &response.JobResults{
		JobID:           job.ID,
		JobType:         job.JobType,
		Status:          job.Status,
		Summary:         summary,
		DetailedResults: detailedResults,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// Cancel moves a pending or running job to cancelled. The status precondition
// is re-validated by the storage update itself, so two racing cancels cannot
// both win.
func (slf *JobService) Cancel(id uuid.UUID, user models.User) (*models.Job, error) {
	rows, err := slf.jobRepo.UpdateOwnedWhereStatus(id, user.ID, cancellableStatuses, map[string]any{
		"status":        models.JobStatusCancelled,
		"error_message": "Job cancelled by user",
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("jobId", id.String()).Msg("Error cancelling job")
		return nil, err
	}
	if rows == 0 {
		job, findErr := slf.jobRepo.FindByIDForUser(id, user.ID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return nil, ErrJobNotFound
			}
			return nil, findErr
		}
		return nil, &StateTransitionError{
			Current: job.Status,
			Message: fmt.Sprintf("Cannot cancel job with status: %s", job.Status),
		}
	}

	job, err := slf.jobRepo.FindByIDForUser(id, user.ID)
	if err != nil {
		return nil, err
	}
	events.PublishJobCancelled(&job)
	return &job, nil
}

type Pagination struct {
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// List returns the user's jobs ordered by creation time descending. per_page
// is clamped to [1,100]; page floors at 1.
func (slf *JobService) List(user models.User, page int, perPage int, status *models.JobStatus, jobType *models.JobType) ([]models.Job, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total, err := slf.jobRepo.CountForUser(user.ID, status, jobType)
	if err != nil {
		slf.logger.Error().Err(err).Str("userId", user.ID.String()).Msg("Error counting jobs")
		return nil, Pagination{}, err
	}

	offset := (page - 1) * perPage
	jobs, err := slf.jobRepo.ListForUser(user.ID, status, jobType, offset, perPage)
	if err != nil {
		slf.logger.Error().Err(err).Str("userId", user.ID.String()).Msg("Error listing jobs")
		return nil, Pagination{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return jobs, Pagination{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

// SetSharing toggles the public flag of a completed job. The shareable id is
// a permanent capability token; only the flag gates reachability.
func (slf *JobService) SetSharing(id uuid.UUID, user models.User, isPublic bool) (*response.JobShare, error) {
	rows, err := slf.jobRepo.UpdateOwnedWhereStatus(id, user.ID, []models.JobStatus{models.JobStatusCompleted}, map[string]any{
		"is_public": isPublic,
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("jobId", id.String()).Msg("Error updating job sharing")
		return nil, err
	}
	if rows == 0 {
		job, findErr := slf.jobRepo.FindByIDForUser(id, user.ID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return nil, ErrJobNotFound
			}
			return nil, findErr
		}
		return nil, &StateTransitionError{
			Current: job.Status,
			Message: "Only completed jobs can be shared",
		}
	}

	job, err := slf.jobRepo.FindByIDForUser(id, user.ID)
	if err != nil {
		return nil, err
	}

	// share_url is literally blanked when sharing is turned off.
	shareURL := ""
	if isPublic {
		shareURL = fmt.Sprintf("/results/%s", job.ShareableID)
	} else {
		slf.invalidatePublicResultsCache(job.ShareableID)
	}

	return &response.JobShare{
		JobID:       job.ID,
		ShareableID: job.ShareableID,
		IsPublic:    job.IsPublic,
		ShareURL:    shareURL,
	}, nil
}

// PublicResults serves the shared-results view by shareable id. A job that is
// not public behaves exactly like one that does not exist. Responses are
// cached briefly in Redis since this path is unauthenticated.
func (slf *JobService) PublicResults(shareableID uuid.UUID) (*response.PublicJobResults, error) {
	cacheKey := publicResultsCacheKey(shareableID)
	if api.Redis != nil {
		var cached response.PublicJobResults
		if err := pkg.RedisGet(cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !pkg.IsRedisNil(err) {
			slf.logger.Warn().Err(err).Msg("Public results cache read failed")
		}
	}

	job, err := slf.jobRepo.FindPublicByShareableID(shareableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		slf.logger.Error().Err(err).Str("shareableId", shareableID.String()).Msg("Error getting shared job")
		return nil, err
	}
	if job.Status != models.JobStatusCompleted {
		return nil, &NotReadyError{
			Current: job.Status,
			Message: "Job is not completed",
		}
	}

	summary, detailedResults := slf.results.BuildResults(&job)
	results := &response.PublicJobResults{
		ShareableID:     job.ShareableID,
		JobType:         job.JobType,
		Summary:         summary,
		DetailedResults: detailedResults,
		GeneratedAt:     time.Now().UTC(),
	}

	if api.Redis != nil {
		if err := pkg.RedisSet(cacheKey, results, publicResultsCacheTTL); err != nil {
			slf.logger.Warn().Err(err).Msg("Public results cache write failed")
		}
	}
	return results, nil
}

func (slf *JobService) invalidatePublicResultsCache(shareableID uuid.UUID) {
	if api.Redis == nil {
		return
	}
	if err := pkg.RedisDelete(publicResultsCacheKey(shareableID)); err != nil {
		slf.logger.Warn().Err(err).Msg("Public results cache invalidation failed")
	}
}

func publicResultsCacheKey(shareableID uuid.UUID) string {
	return "public-results:" + shareableID.String()
}
