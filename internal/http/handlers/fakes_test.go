package handlers

import (
	"context"
	"strings"
	"sync"

	"dreamhouse/internal/domain"
)

type fakeJobRepo struct {
	mu        sync.Mutex
	jobs      map[string]*domain.Job
	createErr error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*domain.Job{}}
}

func (f *fakeJobRepo) Create(ctx context.Context, job *domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, jobID string) (*domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) UpdateStatus(ctx context.Context, jobID string, status domain.JobStatus, errMsg *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok || job.Status.Terminal() {
		return domain.ErrNotFound
	}
	job.Status = status
	if errMsg != nil {
		job.ErrorMessage = *errMsg
	}
	return nil
}

func (f *fakeJobRepo) Complete(ctx context.Context, jobID, imageURL, imageData string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok || job.Status.Terminal() {
		return domain.ErrNotFound
	}
	job.Status = domain.JobStatusCompleted
	job.ImageURL = imageURL
	job.ImageData = imageData
	return nil
}

func (f *fakeJobRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

type fakeHouseRepo struct {
	mu        sync.Mutex
	houses    []*domain.House
	createErr error
}

func (f *fakeHouseRepo) Create(ctx context.Context, house *domain.House) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.houses = append(f.houses, house)
	return nil
}

func (f *fakeHouseRepo) GetByID(ctx context.Context, id string) (*domain.House, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, house := range f.houses {
		if house.ID == id {
			return house, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeHouseRepo) ListSummaries(ctx context.Context) ([]domain.HouseSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summaries := make([]domain.HouseSummary, 0, len(f.houses))
	for i := len(f.houses) - 1; i >= 0; i-- {
		house := f.houses[i]
		summaries = append(summaries, domain.HouseSummary{
			ID:        house.ID,
			Prompt:    house.Prompt,
			ImageURL:  house.ImageURL,
			CreatedAt: house.CreatedAt,
		})
	}
	return summaries, nil
}

func (f *fakeHouseRepo) Search(ctx context.Context, term string, limit int) ([]domain.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []domain.SearchResult
	for _, house := range f.houses {
		if strings.Contains(strings.ToLower(house.Prompt), strings.ToLower(term)) {
			results = append(results, domain.SearchResult{House: *house, Score: 1})
		}
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func (f *fakeHouseRepo) Suggest(ctx context.Context, term string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var suggestions []string
	for _, house := range f.houses {
		if strings.HasPrefix(strings.ToLower(house.Prompt), strings.ToLower(term)) {
			suggestions = append(suggestions, house.Prompt)
		}
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}

type fakeStarter struct {
	mu      sync.Mutex
	started []string
}

func (f *fakeStarter) Start(jobID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, jobID)
}

func (f *fakeStarter) startedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.started...)
}

type fakeFetcher struct {
	data string
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, imageURL string) (string, error) {
	return f.data, f.err
}
