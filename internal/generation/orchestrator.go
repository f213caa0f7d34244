package generation

import (
	"context"
	"errors"

	"dreamhouse/internal/domain"
	"dreamhouse/internal/imagegen"
	"dreamhouse/internal/infra"
	"dreamhouse/internal/materialize"

	"github.com/google/uuid"
)

// Orchestrator turns a pending job into a completed or failed one. It runs as
// a detached unit of work: the submission handler starts it and returns
// without waiting, and no error ever propagates out of it — failures are
// absorbed into the job's terminal state.
type Orchestrator struct {
	jobs      domain.JobRepository
	houses    domain.HouseRepository
	generator imagegen.Generator
	fetcher   materialize.Fetcher
	logger    infra.Logger
}

func NewOrchestrator(jobs domain.JobRepository, houses domain.HouseRepository, generator imagegen.Generator, fetcher materialize.Fetcher, logger infra.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:      jobs,
		houses:    houses,
		generator: generator,
		fetcher:   fetcher,
		logger:    logger,
	}
}

// Start launches the generation pipeline for jobID in the background and
// returns immediately. There is no cancellation: a client that stops polling
// leaves a job that still runs to completion.
func (o *Orchestrator) Start(jobID string) {
	go o.run(jobID)
}

func (o *Orchestrator) run(jobID string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().Interface("panic", r).Str("job_id", jobID).Msg("generation: panic recovered")
			o.fail(jobID, "internal error")
		}
	}()

	// The caller's request has already been answered; this work is not tied
	// to any request lifetime.
	ctx := context.Background()

	job, err := o.jobs.GetByID(ctx, jobID)
	if err != nil {
		// Nothing awaits this task, so a vanished job is abandoned silently.
		if !errors.Is(err, domain.ErrNotFound) {
			o.logger.Error().Err(err).Str("job_id", jobID).Msg("generation: load job failed")
		}
		return
	}

	if err := o.jobs.UpdateStatus(ctx, jobID, domain.JobStatusProcessing, nil); err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("generation: mark processing failed")
		o.fail(jobID, "failed to start processing")
		return
	}

	imageURL, err := o.generator.Generate(ctx, job.Prompt)
	if err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("generation: provider call failed")
		o.fail(jobID, err.Error())
		return
	}

	imageData, err := o.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("generation: materialize failed")
		o.fail(jobID, err.Error())
		return
	}

	if err := o.jobs.Complete(ctx, jobID, imageURL, imageData); err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("generation: complete failed")
		o.fail(jobID, "failed to persist result")
		return
	}

	house := &domain.House{
		ID:        uuid.NewString(),
		Prompt:    job.Prompt,
		ImageURL:  imageURL,
		ImageData: imageData,
	}
	if err := o.houses.Create(ctx, house); err != nil {
		// The job already reached completed; losing the gallery row is
		// tolerated rather than unwinding a terminal state.
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("generation: save house failed")
	}
}

func (o *Orchestrator) fail(jobID, message string) {
	if message == "" {
		message = "unknown error"
	}
	if err := o.jobs.UpdateStatus(context.Background(), jobID, domain.JobStatusFailed, &message); err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("generation: mark failed failed")
	}
}
