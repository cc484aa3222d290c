package events

import (
	"api/internal/api/models"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Job lifecycle events published for the scraping/analysis worker. Publish
// failures are logged and never surfaced to the request path.
var (
	conn          *nats.Conn
	subjectPrefix string
	logger        zerolog.Logger
)

type JobEvent struct {
	JobID   uuid.UUID        `json:"job_id"`
	JobType models.JobType   `json:"job_type"`
	Status  models.JobStatus `json:"status"`
	URLs    []string         `json:"urls,omitempty"`
}

// Connect establishes the NATS connection used for job events. When it fails
// the API keeps running with events disabled.
func Connect(natsURL string, prefix string, log zerolog.Logger) error {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	conn = nc
	subjectPrefix = prefix
	logger = log
	return nil
}

// Close drains the NATS connection.
func Close() {
	if conn == nil {
		return
	}
	if err := conn.Drain(); err != nil {
		logger.Error().Err(err).Msg("Failed to drain NATS connection")
	}
	conn = nil
}

func PublishJobSubmitted(job *models.Job) {
	publish("jobs.submitted", JobEvent{
		JobID:   job.ID,
		JobType: job.JobType,
		Status:  job.Status,
		URLs:    job.URLs,
	})
}

func PublishJobCancelled(job *models.Job) {
	publish("jobs.cancelled", JobEvent{
		JobID:   job.ID,
		JobType: job.JobType,
		Status:  job.Status,
	})
}

func publish(suffix string, event JobEvent) {
	if conn == nil {
		return
	}
	subject := fmt.Sprintf("%s.%s", subjectPrefix, suffix)
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("subject", subject).Msg("Failed to marshal job event")
		return
	}
	if err := conn.Publish(subject, data); err != nil {
		logger.Error().Err(err).Str("subject", subject).Msg("Failed to publish job event")
	}
}
