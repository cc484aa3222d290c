package repo

import (
	"api"
	"api/internal/api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository struct {
	Db *gorm.DB
}

func NewJobRepository() *JobRepository {
	return &JobRepository{Db: api.DB}
}

func (slf *JobRepository) Create(job *models.Job) error {
	return slf.Db.Create(job).Error
}

// FindByIDForUser retrieves a job scoped to its owner. A job owned by someone
// else is indistinguishable from a missing one.
func (slf *JobRepository) FindByIDForUser(id uuid.UUID, userID uuid.UUID) (models.Job, error) {
	var job models.Job
	err := slf.Db.Where("id = ? AND user_id = ?", id, userID).First(&job).Error
	return job, err
}

// FindPublicByShareableID retrieves a job by shareable id, only when sharing
// is enabled.
func (slf *JobRepository) FindPublicByShareableID(shareableID uuid.UUID) (models.Job, error) {
	var job models.Job
	err := slf.Db.Where("shareable_id = ? AND is_public = ?", shareableID, true).First(&job).Error
	return job, err
}

func (slf *JobRepository) filteredForUser(userID uuid.UUID, status *models.JobStatus, jobType *models.JobType) *gorm.DB {
	query := slf.Db.Model(&models.Job{}).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if jobType != nil {
		query = query.Where("job_type = ?", *jobType)
	}
	return query
}

func (slf *JobRepository) CountForUser(userID uuid.UUID, status *models.JobStatus, jobType *models.JobType) (int64, error) {
	var count int64
	err := slf.filteredForUser(userID, status, jobType).Count(&count).Error
	return count, err
}

func (slf *JobRepository) ListForUser(userID uuid.UUID, status *models.JobStatus, jobType *models.JobType, offset, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := slf.filteredForUser(userID, status, jobType).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

// UpdateOwnedWhereStatus applies updates to an owned job only while its status
// is one of allowed. The status precondition is enforced by the UPDATE itself,
// so concurrent transitions cannot be lost; a zero row count means the job is
// missing, not owned, or no longer in an allowed status.
func (slf *JobRepository) UpdateOwnedWhereStatus(id uuid.UUID, userID uuid.UUID, allowed []models.JobStatus, updates map[string]any) (int64, error) {
	result := slf.Db.Model(&models.Job{}).
		Where("id = ? AND user_id = ? AND status IN ?", id, userID, allowed).
		Updates(updates)
	return result.RowsAffected, result.Error
}
