package response

import (
	"api/internal/api/models"
	"time"

	"github.com/google/uuid"
)

// Job is the owner-facing view. ShareableID is only populated once the job is
// actually public, so a dormant shareable id never leaks.
type Job struct {
	JobID         uuid.UUID        `json:"job_id"`
	Status        models.JobStatus `json:"status"`
	JobType       models.JobType   `json:"job_type"`
	TotalURLs     int              `json:"total_urls"`
	ProcessedURLs int              `json:"processed_urls"`
	ErrorMessage  *string          `json:"error_message"`
	ShareableID   *uuid.UUID       `json:"shareable_id"`
	IsPublic      bool             `json:"is_public"`
	StartedAt     *time.Time       `json:"started_at"`
	CompletedAt   *time.Time       `json:"completed_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type JobProgress struct {
	JobID              uuid.UUID        `json:"job_id"`
	Status             models.JobStatus `json:"status"`
	Processed          int              `json:"processed"`
	Total              int              `json:"total"`
	ProgressPercentage float64          `json:"progress_percentage"`
	ErrorMessage       *string          `json:"error_message"`
}

type JobResults struct {
	JobID           uuid.UUID        `json:"job_id"`
	JobType         models.JobType   `json:"job_type"`
	Status          models.JobStatus `json:"status"`
	Summary         map[string]any   `json:"summary"`
	DetailedResults map[string]any   `json:"detailed_results"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

type JobShare struct {
	JobID       uuid.UUID `json:"job_id"`
	ShareableID uuid.UUID `json:"shareable_id"`
	IsPublic    bool      `json:"is_public"`
	ShareURL    string    `json:"share_url"`
}

type JobList struct {
	Jobs       []Job `json:"jobs"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// PublicJobResults is the unauthenticated shared view; it is keyed by the
// shareable id and never exposes the job id or owner.
type PublicJobResults struct {
	ShareableID     uuid.UUID      `json:"shareable_id"`
	JobType         models.JobType `json:"job_type"`
	Summary         map[string]any `json:"summary"`
	DetailedResults map[string]any `json:"detailed_results"`
	GeneratedAt     time.Time      `json:"generated_at"`
}
