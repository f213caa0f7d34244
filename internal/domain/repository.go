package domain

import "context"

// JobRepository defines persistence for job entities. The orchestrator is
// the only writer after creation; one writer per job is a convention, not an
// enforced lock.
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, jobID string) (*Job, error)
	UpdateStatus(ctx context.Context, jobID string, status JobStatus, errMsg *string) error
	Complete(ctx context.Context, jobID, imageURL, imageData string) error
}

// HouseRepository handles persistence for the house gallery.
type HouseRepository interface {
	Create(ctx context.Context, house *House) error
	GetByID(ctx context.Context, id string) (*House, error)
	ListSummaries(ctx context.Context) ([]HouseSummary, error)
	Search(ctx context.Context, term string, limit int) ([]SearchResult, error)
	Suggest(ctx context.Context, term string, limit int) ([]string, error)
}
