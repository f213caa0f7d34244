package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"dreamhouse/internal/domain"
	"dreamhouse/internal/infra"
	"dreamhouse/internal/materialize"
)

// Starter launches the background generation pipeline for a job. Satisfied
// by *generation.Orchestrator; narrowed to an interface so handler tests can
// substitute their own.
type Starter interface {
	Start(jobID string)
}

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Jobs          domain.JobRepository
	Houses        domain.HouseRepository
	Orchestrator  Starter
	Fetcher       materialize.Fetcher
	Logger        infra.Logger
	SubmitTimeout time.Duration
}

func NewApp(jobs domain.JobRepository, houses domain.HouseRepository, orchestrator Starter, fetcher materialize.Fetcher, logger infra.Logger, submitTimeout time.Duration) *App {
	if submitTimeout <= 0 {
		submitTimeout = 8 * time.Second
	}
	return &App{
		Jobs:          jobs,
		Houses:        houses,
		Orchestrator:  orchestrator,
		Fetcher:       fetcher,
		Logger:        logger,
		SubmitTimeout: submitTimeout,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]any{"success": false, "message": message})
}
