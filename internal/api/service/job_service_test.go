package service

import (
	"api"
	"api/internal/api/models"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Job{}, &models.GFWLTeamSubmission{}, &models.ScrapedData{})
	require.NoError(t, err)

	api.DB = db
	api.Logger = zerolog.Nop()
}

func createTestUser(t *testing.T, clerkID string) models.User {
	t.Helper()
	user := models.User{ClerkUserID: clerkID}
	require.NoError(t, api.DB.Create(&user).Error)
	return user
}

func createTestJob(t *testing.T, user models.User, status models.JobStatus) models.Job {
	t.Helper()
	job := models.Job{
		JobType:       models.JobTypeIndividual,
		Status:        status,
		UserID:        user.ID,
		URLs:          []string{"https://replays.example/g/1", "https://replays.example/g/2"},
		TotalURLs:     2,
		ProcessedURLs: 0,
	}
	require.NoError(t, api.DB.Create(&job).Error)
	return job
}

func TestSubmitIndividual(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "user_submit")
	svc := NewJobService()

	job, err := svc.SubmitIndividual([]string{"https://replays.example/g/1", "https://replays.example/g/2"}, user)
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusPending, job.Status)
	assert.Equal(t, models.JobTypeIndividual, job.JobType)
	assert.Equal(t, 2, job.TotalURLs)
	assert.Equal(t, 0, job.ProcessedURLs)
	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.NotEqual(t, uuid.Nil, job.ShareableID)
	assert.False(t, job.IsPublic)
}

func TestSubmitIndividualValidation(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "user_submit_invalid")
	svc := NewJobService()

	_, err := svc.SubmitIndividual(nil, user)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	urls := make([]string, 13)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://replays.example/g/%d", i)
	}
	_, err = svc.SubmitIndividual(urls, user)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Maximum 12 URLs allowed per individual job", validationErr.Error())
}

func TestFindByIDForUserHidesOtherUsersJobs(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "user_owner")
	other := createTestUser(t, "user_other")
	job := createTestJob(t, owner, models.JobStatusPending)
	svc := NewJobService()

	found, err := svc.FindByIDForUser(job.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, job.ID, found.ID)

	_, err = svc.FindByIDForUser(job.ID, other)
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = svc.FindByIDForUser(uuid.New(), owner)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestProgress(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "user_progress")
	svc := NewJobService()

	job := createTestJob(t, user, models.JobStatusRunning)
	require.NoError(t, api.DB.Model(&job).Updates(map[string]any{"total_urls": 3, "processed_urls": 1}).Error)

	_, progress, err := svc.Progress(job.ID, user)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Processed)
	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 33.33, progress.Percentage)

	empty := createTestJob(t, user, models.JobStatusPending)
	require.NoError(t, api.DB.Model(&empty).Updates(map[string]any{"total_urls": 0}).Error)

	_, progress, err = svc.Progress(empty.ID, user)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress.Percentage)
}

func TestResults(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "user_results")
	svc := NewJobService()

	running := createTestJob(t, user, models.JobStatusRunning)
	_, err := svc.Results(running.ID, user)
	var notReadyErr *NotReadyError
	require.ErrorAs(t, err, &notReadyErr)
	assert.Equal(t, "Job is not completed. Current status: running", notReadyErr.Error())

	completed := createTestJob(t, user, models.JobStatusCompleted)
	results, err := svc.Results(completed.ID, user)
	require.NoError(t, err)

	assert.Equal(t, completed.ID, results.JobID)
	assert.Equal(t, models.JobStatusCompleted, results.Status)
	assert.Equal(t, 2, results.Summary["total_games"])
	games, ok := results.DetailedResults["games"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, games, 2)
	assert.Equal(t, "processed", games[0]["status"])
	assert.False(t, results.GeneratedAt.IsZero())
}

func TestCancel(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "user_cancel")
	svc := NewJobService()

	job := createTestJob(t, user, models.JobStatusPending)
	cancelled, err := svc.Cancel(job.ID, user)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.ErrorMessage)
	assert.Equal(t, "Job cancelled by user", *cancelled.ErrorMessage)

	// A second cancel finds the job already cancelled.
	_, err = svc.Cancel(job.ID, user)
	var stateErr *StateTransitionError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "Cannot cancel job with status: cancelled", stateErr.Error())

	completed := createTestJob(t, user, models.JobStatusCompleted)
	_, err = svc.Cancel(completed.ID, user)
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.JobStatusCompleted, stateErr.Current)
}

func TestCancelNotOwned(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "user_cancel_owner")
	other := createTestUser(t, "user_cancel_other")
	job := createTestJob(t, owner, models.JobStatusPending)
	svc := NewJobService()

	_, err := svc.Cancel(job.ID, other)
	assert.ErrorIs(t, err, ErrJobNotFound)

	// The owner's job is untouched.
	kept, err := svc.FindByIDForUser(job.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, kept.Status)
}

func TestList(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "user_list")
	other := createTestUser(t, "user_list_other")
	svc := NewJobService()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		status := models.JobStatusPending
		if i%2 == 1 {
			status = models.JobStatusCompleted
		}
		job := models.Job{
			JobType:   models.JobTypeIndividual,
			Status:    status,
			UserID:    user.ID,
			URLs:      []string{"https://replays.example/g/1"},
			TotalURLs: 1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, api.DB.Create(&job).Error)
	}
	createTestJob(t, other, models.JobStatusPending)

	jobs, pagination, err := svc.List(user, 1, 2, nil, nil)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, int64(5), pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, jobs[0].CreatedAt.After(jobs[1].CreatedAt))

	jobs, pagination, err = svc.List(user, 3, 2, nil, nil)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
	assert.Equal(t, 3, pagination.Page)

	completed := models.JobStatusCompleted
	jobs, pagination, err = svc.List(user, 1, 20, &completed, nil)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, int64(2), pagination.Total)

	gfwl := models.JobTypeGFWL
	_, pagination, err = svc.List(user, 1, 20, nil, &gfwl)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pagination.Total)

	// Out-of-range paging parameters are clamped, not rejected.
	_, pagination, err = svc.List(user, -3, 500, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 100, pagination.PerPage)
}

func TestSetSharing(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "user_share")
	svc := NewJobService()

	pending := createTestJob(t, user, models.JobStatusPending)
	_, err := svc.SetSharing(pending.ID, user, true)
	var stateErr *StateTransitionError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "Only completed jobs can be shared", stateErr.Error())

	completed := createTestJob(t, user, models.JobStatusCompleted)
	share, err := svc.SetSharing(completed.ID, user, true)
	require.NoError(t, err)
	assert.True(t, share.IsPublic)
	assert.Equal(t, completed.ShareableID, share.ShareableID)
	assert.Equal(t, fmt.Sprintf("/results/%s", completed.ShareableID), share.ShareURL)

	share, err = svc.SetSharing(completed.ID, user, false)
	require.NoError(t, err)
	assert.False(t, share.IsPublic)
	assert.Equal(t, "", share.ShareURL)

	// The shareable id survives the toggle.
	assert.Equal(t, completed.ShareableID, share.ShareableID)
}

func TestPublicResults(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "user_public")
	svc := NewJobService()

	completed := createTestJob(t, user, models.JobStatusCompleted)
	require.NoError(t, api.DB.Model(&completed).Update("is_public", true).Error)

	results, err := svc.PublicResults(completed.ShareableID)
	require.NoError(t, err)
	assert.Equal(t, completed.ShareableID, results.ShareableID)
	assert.Equal(t, models.JobTypeIndividual, results.JobType)
	assert.Equal(t, 2, results.Summary["total_games"])

	private := createTestJob(t, user, models.JobStatusCompleted)
	_, err = svc.PublicResults(private.ShareableID)
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = svc.PublicResults(uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)

	shared := createTestJob(t, user, models.JobStatusPending)
	require.NoError(t, api.DB.Model(&shared).Update("is_public", true).Error)
	_, err = svc.PublicResults(shared.ShareableID)
	var notReadyErr *NotReadyError
	require.ErrorAs(t, err, &notReadyErr)
	assert.Equal(t, "Job is not completed", notReadyErr.Error())
}
