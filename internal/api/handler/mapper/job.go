package mapper

import (
	"api/internal/api/handler/response"
	"api/internal/api/models"
	"api/pkg"
)

// ToJobResponse converts a job model to its owner-facing view, hiding the
// shareable id until the job is actually public.
func ToJobResponse(j models.Job) response.Job {
	resp := response.Job{
		JobID:         j.ID,
		Status:        j.Status,
		JobType:       j.JobType,
		TotalURLs:     j.TotalURLs,
		ProcessedURLs: j.ProcessedURLs,
		ErrorMessage:  j.ErrorMessage,
		IsPublic:      j.IsPublic,
		StartedAt:     j.StartedAt,
		CompletedAt:   j.CompletedAt,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
	if j.IsPublic {
		resp.ShareableID = pkg.ToPtr(j.ShareableID)
	}
	return resp
}

func ToJobResponses(entities []models.Job) []response.Job {
	jobs := make([]response.Job, 0, len(entities))
	for _, entity := range entities {
		jobs = append(jobs, ToJobResponse(entity))
	}
	return jobs
}
