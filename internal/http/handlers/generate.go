package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dreamhouse/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type startGenerationRequest struct {
	Prompt string `json:"prompt"`
}

// StartGeneration validates the prompt, creates a pending job, and launches
// the orchestrator without waiting for it. The synchronous portion runs under
// a hard deadline: the hosting platform cuts requests off at ~10s, so a slow
// database must surface as 503 rather than a hang.
func (a *App) StartGeneration(w http.ResponseWriter, r *http.Request) {
	var req startGenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.SubmitTimeout)
	defer cancel()

	job := &domain.Job{
		ID:     uuid.NewString(),
		Status: domain.JobStatusPending,
		Prompt: req.Prompt,
	}
	if err := a.Jobs.Create(ctx, job); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domain.ErrStoreUnavailable) {
			a.error(w, http.StatusServiceUnavailable, "Service temporarily unavailable - please try again")
			return
		}
		a.Logger.Error().Err(err).Msg("start-generation: create job failed")
		a.error(w, http.StatusInternalServerError, "Error starting generation")
		return
	}

	a.Orchestrator.Start(job.ID)

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"jobId":   job.ID,
		"message": "Generation started",
	})
}

// CheckStatus reports a job's current state. It is idempotent and
// side-effect-free; clients poll it until the job turns terminal.
func (a *App) CheckStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	job, err := a.Jobs.GetByID(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "Job not found")
			return
		}
		a.Logger.Error().Err(err).Str("job_id", jobID).Msg("check-status: load job failed")
		a.error(w, http.StatusInternalServerError, "Error checking status")
		return
	}

	resp := map[string]any{
		"success": true,
		"status":  job.Status,
	}
	switch job.Status {
	case domain.JobStatusCompleted:
		resp["imageData"] = job.ImageData
	case domain.JobStatusFailed:
		resp["error"] = job.ErrorMessage
	}
	a.json(w, http.StatusOK, resp)
}
