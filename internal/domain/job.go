package domain

import "time"

// JobStatus enumerates job lifecycle states. Transitions are one-directional:
// pending -> processing -> completed | failed. Terminal states are never
// re-entered.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status is a final state.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job tracks one generation request's lifecycle. ImageData holds the
// self-contained data URI and is set only on completion; ErrorMessage is set
// only on failure.
type Job struct {
	ID           string
	Status       JobStatus
	Prompt       string
	ImageURL     string
	ImageData    string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
