package service

import (
	"api/internal/api/models"
	"errors"
)

// ErrJobNotFound covers both a missing job and a job owned by someone else;
// the two are never distinguished.
var ErrJobNotFound = errors.New("job not found")

// ValidationError rejects bad input shape or size.
type ValidationError struct {
	Message string
}

func (slf *ValidationError) Error() string {
	return slf.Message
}

// StateTransitionError rejects an operation the job's current status does not
// permit.
type StateTransitionError struct {
	Current models.JobStatus
	Message string
}

func (slf *StateTransitionError) Error() string {
	return slf.Message
}

// NotReadyError rejects a results request on a job that is not completed.
type NotReadyError struct {
	Current models.JobStatus
	Message string
}

func (slf *NotReadyError) Error() string {
	return slf.Message
}
