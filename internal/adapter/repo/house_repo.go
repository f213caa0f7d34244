package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dreamhouse/internal/domain"
)

// HouseRepositoryPG implements domain.HouseRepository using PostgreSQL.
type HouseRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewHouseRepository(pool *pgxpool.Pool) *HouseRepositoryPG {
	return &HouseRepositoryPG{pool: pool}
}

// Create persists a new house record.
func (r *HouseRepositoryPG) Create(ctx context.Context, house *domain.House) error {
	query := `
INSERT INTO houses (id, prompt, image_url, image_data)
VALUES ($1, $2, $3, $4);
`
	_, err := r.pool.Exec(ctx, query, house.ID, house.Prompt, house.ImageURL, house.ImageData)
	return err
}

// GetByID fetches a single house including its image payload.
func (r *HouseRepositoryPG) GetByID(ctx context.Context, id string) (*domain.House, error) {
	query := `
SELECT id, prompt, image_url, image_data, created_at
FROM houses
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	var house domain.House
	if err := row.Scan(&house.ID, &house.Prompt, &house.ImageURL, &house.ImageData, &house.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &house, nil
}

// ListSummaries returns all houses newest first, without the image payload.
// Gallery listings would otherwise ship every base64 body on each page load.
func (r *HouseRepositoryPG) ListSummaries(ctx context.Context) ([]domain.HouseSummary, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, prompt, image_url, created_at
FROM houses
ORDER BY created_at DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var houses []domain.HouseSummary
	for rows.Next() {
		var house domain.HouseSummary
		if err := rows.Scan(&house.ID, &house.Prompt, &house.ImageURL, &house.CreatedAt); err != nil {
			return nil, err
		}
		houses = append(houses, house)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return houses, nil
}

// Search runs a full-text query over house prompts, ordered by relevance.
func (r *HouseRepositoryPG) Search(ctx context.Context, term string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 12
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, prompt, image_url, image_data, created_at,
       ts_rank(prompt_tsv, websearch_to_tsquery('english', $1)) AS score
FROM houses
WHERE prompt_tsv @@ websearch_to_tsquery('english', $1)
ORDER BY score DESC
LIMIT $2;
`, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var res domain.SearchResult
		if err := rows.Scan(&res.ID, &res.Prompt, &res.ImageURL, &res.ImageData, &res.CreatedAt, &res.Score); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Suggest returns prompt texts starting with term, for autocomplete.
func (r *HouseRepositoryPG) Suggest(ctx context.Context, term string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.pool.Query(ctx, `
SELECT DISTINCT prompt
FROM houses
WHERE prompt ILIKE $1 || '%'
ORDER BY prompt
LIMIT $2;
`, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []string
	for rows.Next() {
		var prompt string
		if err := rows.Scan(&prompt); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return suggestions, nil
}

var _ domain.HouseRepository = (*HouseRepositoryPG)(nil)
