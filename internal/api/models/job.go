package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// ParseJobStatus validates a status filter value coming from the query string.
func ParseJobStatus(s string) (JobStatus, bool) {
	switch JobStatus(s) {
	case JobStatusPending, JobStatusRunning, JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return JobStatus(s), true
	}
	return "", false
}

type JobType string

const (
	JobTypeIndividual JobType = "individual"
	JobTypeGFWL       JobType = "gfwl"
)

func ParseJobType(s string) (JobType, bool) {
	switch JobType(s) {
	case JobTypeIndividual, JobTypeGFWL:
		return JobType(s), true
	}
	return "", false
}

// Job is a user-submitted unit of work over a list of replay URLs.
// StartedAt/CompletedAt and the running/completed/failed transitions are
// reserved for the scraping worker; no endpoint sets them.
type Job struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	JobType       JobType    `gorm:"not null;index;column:job_type"`
	Status        JobStatus  `gorm:"not null;index"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index;column:user_id"`
	URLs          StringList `gorm:"type:text;not null;column:urls"`
	TotalURLs     int        `gorm:"not null;default:0;column:total_urls"`
	ProcessedURLs int        `gorm:"not null;default:0;column:processed_urls"`
	ErrorMessage  *string    `gorm:"column:error_message"`
	ShareableID   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null;column:shareable_id"`
	IsPublic      bool       `gorm:"not null;default:false;column:is_public"`
	StartedAt     *time.Time `gorm:"column:started_at"`
	CompletedAt   *time.Time `gorm:"column:completed_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime;column:updated_at"`

	TeamSubmission *GFWLTeamSubmission `gorm:"foreignKey:JobID"`
}

func (slf *Job) BeforeCreate(tx *gorm.DB) error {
	if slf.ID == uuid.Nil {
		slf.ID = uuid.New()
	}
	if slf.ShareableID == uuid.Nil {
		slf.ShareableID = uuid.New()
	}
	if slf.Status == "" {
		slf.Status = JobStatusPending
	}
	return nil
}
