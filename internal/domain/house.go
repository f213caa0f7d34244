package domain

import "time"

// House is the durable gallery record of one successfully generated image.
// Houses are append-only and outlive the Job that produced them.
type House struct {
	ID        string
	Prompt    string
	ImageURL  string
	ImageData string
	CreatedAt time.Time
}

// HouseSummary is a House without its image payload, used for gallery
// listings where shipping every base64 body would be wasteful.
type HouseSummary struct {
	ID        string
	Prompt    string
	ImageURL  string
	CreatedAt time.Time
}

// SearchResult pairs a House with its text-search relevance score.
type SearchResult struct {
	House
	Score float64
}
