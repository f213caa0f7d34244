package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dreamhouse/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func newTestApp(jobs *fakeJobRepo, houses *fakeHouseRepo, starter *fakeStarter) *App {
	return NewApp(jobs, houses, starter, &fakeFetcher{}, zerolog.Nop(), time.Second)
}

func TestStartGeneration(t *testing.T) {
	jobs := newFakeJobRepo()
	starter := &fakeStarter{}
	app := newTestApp(jobs, &fakeHouseRepo{}, starter)

	req := httptest.NewRequest("POST", "/start-generation", strings.NewReader(`{"prompt":"A glass cabin in the forest"}`))
	rr := httptest.NewRecorder()
	app.StartGeneration(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload struct {
		Success bool   `json:"success"`
		JobID   string `json:"jobId"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Success || payload.JobID == "" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	job, err := jobs.GetByID(context.Background(), payload.JobID)
	if err != nil {
		t.Fatalf("job not persisted: %v", err)
	}
	if job.Status != domain.JobStatusPending {
		t.Fatalf("new job status = %s, want pending", job.Status)
	}
	if ids := starter.startedIDs(); len(ids) != 1 || ids[0] != payload.JobID {
		t.Fatalf("orchestrator not started for job: %v", ids)
	}
}

func TestStartGenerationEmptyPrompt(t *testing.T) {
	jobs := newFakeJobRepo()
	starter := &fakeStarter{}
	app := newTestApp(jobs, &fakeHouseRepo{}, starter)

	for _, body := range []string{`{}`, `{"prompt":""}`, `{"prompt":"   "}`} {
		req := httptest.NewRequest("POST", "/start-generation", strings.NewReader(body))
		rr := httptest.NewRecorder()
		app.StartGeneration(rr, req)

		if rr.Code != 400 {
			t.Fatalf("body %s: unexpected status code: got %d, want 400", body, rr.Code)
		}
	}
	if jobs.count() != 0 {
		t.Fatalf("no job must be created for an invalid prompt, got %d", jobs.count())
	}
	if len(starter.startedIDs()) != 0 {
		t.Fatalf("orchestrator must not start for an invalid prompt")
	}
}

func TestStartGenerationStoreDeadline(t *testing.T) {
	jobs := newFakeJobRepo()
	jobs.createErr = context.DeadlineExceeded
	app := newTestApp(jobs, &fakeHouseRepo{}, &fakeStarter{})

	req := httptest.NewRequest("POST", "/start-generation", strings.NewReader(`{"prompt":"a hut"}`))
	rr := httptest.NewRecorder()
	app.StartGeneration(rr, req)

	if rr.Code != 503 {
		t.Fatalf("unexpected status code: got %d, want 503", rr.Code)
	}
}

func TestStartGenerationTwoSubmissionsAreIndependent(t *testing.T) {
	jobs := newFakeJobRepo()
	starter := &fakeStarter{}
	app := newTestApp(jobs, &fakeHouseRepo{}, starter)

	var ids []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/start-generation", strings.NewReader(`{"prompt":"A glass cabin in the forest"}`))
		rr := httptest.NewRecorder()
		app.StartGeneration(rr, req)
		if rr.Code != 200 {
			t.Fatalf("unexpected status code: got %d", rr.Code)
		}
		var payload struct {
			JobID string `json:"jobId"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		ids = append(ids, payload.JobID)
	}
	if ids[0] == ids[1] {
		t.Fatalf("identical prompts must not be deduplicated: both got %s", ids[0])
	}
	if jobs.count() != 2 {
		t.Fatalf("expected 2 independent jobs, got %d", jobs.count())
	}
}

func checkStatus(t *testing.T, app *App, jobID string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("GET", "/check-status/"+jobID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("jobId", jobID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	app.CheckStatus(rr, req)

	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rr.Code, payload
}

func TestCheckStatusUnknownJobIdempotent(t *testing.T) {
	app := newTestApp(newFakeJobRepo(), &fakeHouseRepo{}, &fakeStarter{})

	for i := 0; i < 3; i++ {
		code, _ := checkStatus(t, app, "00000000-0000-0000-0000-000000000000")
		if code != 404 {
			t.Fatalf("poll %d: unexpected status code: got %d, want 404", i, code)
		}
	}
}

func TestCheckStatusPending(t *testing.T) {
	jobs := newFakeJobRepo()
	_ = jobs.Create(context.Background(), &domain.Job{ID: "job-1", Status: domain.JobStatusPending, Prompt: "p"})
	app := newTestApp(jobs, &fakeHouseRepo{}, &fakeStarter{})

	code, payload := checkStatus(t, app, "job-1")
	if code != 200 {
		t.Fatalf("unexpected status code: %d", code)
	}
	if payload["status"] != "pending" {
		t.Fatalf("status = %v, want pending", payload["status"])
	}
	if _, ok := payload["imageData"]; ok {
		t.Fatalf("pending job must not expose imageData")
	}
	if _, ok := payload["error"]; ok {
		t.Fatalf("pending job must not expose error")
	}
}

func TestCheckStatusCompleted(t *testing.T) {
	jobs := newFakeJobRepo()
	_ = jobs.Create(context.Background(), &domain.Job{ID: "job-1", Status: domain.JobStatusPending, Prompt: "p"})
	_ = jobs.Complete(context.Background(), "job-1", "https://img.example.com/1.png", "data:image/png;base64,aGk=")
	app := newTestApp(jobs, &fakeHouseRepo{}, &fakeStarter{})

	code, payload := checkStatus(t, app, "job-1")
	if code != 200 {
		t.Fatalf("unexpected status code: %d", code)
	}
	if payload["status"] != "completed" {
		t.Fatalf("status = %v, want completed", payload["status"])
	}
	if payload["imageData"] != "data:image/png;base64,aGk=" {
		t.Fatalf("imageData missing from completed job: %v", payload["imageData"])
	}
	if _, ok := payload["error"]; ok {
		t.Fatalf("completed job must not expose error")
	}
}

func TestCheckStatusFailed(t *testing.T) {
	jobs := newFakeJobRepo()
	_ = jobs.Create(context.Background(), &domain.Job{ID: "job-1", Status: domain.JobStatusPending, Prompt: "p"})
	msg := "provider failure: content policy violation"
	_ = jobs.UpdateStatus(context.Background(), "job-1", domain.JobStatusFailed, &msg)
	app := newTestApp(jobs, &fakeHouseRepo{}, &fakeStarter{})

	code, payload := checkStatus(t, app, "job-1")
	if code != 200 {
		t.Fatalf("unexpected status code: %d", code)
	}
	if payload["status"] != "failed" {
		t.Fatalf("status = %v, want failed", payload["status"])
	}
	if payload["error"] != msg {
		t.Fatalf("error = %v, want %q", payload["error"], msg)
	}
	if _, ok := payload["imageData"]; ok {
		t.Fatalf("failed job must not expose imageData")
	}
}
