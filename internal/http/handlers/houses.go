package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dreamhouse/internal/domain"
	"dreamhouse/internal/search"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	searchResultLimit = 12
	autocompleteLimit = 5
)

// HousesList returns all houses newest first, excluding image payloads.
func (a *App) HousesList(w http.ResponseWriter, r *http.Request) {
	houses, err := a.Houses.ListSummaries(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("houses: list failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch houses")
		return
	}
	items := make([]map[string]any, 0, len(houses))
	for _, house := range houses {
		items = append(items, map[string]any{
			"id":        house.ID,
			"prompt":    house.Prompt,
			"imageUrl":  house.ImageURL,
			"createdAt": house.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "data": items})
}

// HouseImage returns one house's image payload.
func (a *App) HouseImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	house, err := a.Houses.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "House not found")
			return
		}
		a.Logger.Error().Err(err).Str("house_id", id).Msg("houses: load failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch house image")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"imageData": house.ImageData})
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// Search runs a fuzzy full-text query over house prompts.
func (a *App) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	term := search.NormalizeTerm(req.SearchTerm)
	if term == "" {
		a.error(w, http.StatusBadRequest, "Search term is required")
		return
	}

	results, err := a.Houses.Search(r.Context(), term, searchResultLimit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("search: query failed")
		a.error(w, http.StatusInternalServerError, "Error performing search")
		return
	}
	items := make([]map[string]any, 0, len(results))
	for _, res := range results {
		items = append(items, map[string]any{
			"id":        res.ID,
			"prompt":    res.Prompt,
			"imageUrl":  res.ImageURL,
			"imageData": res.ImageData,
			"createdAt": res.CreatedAt,
			"score":     res.Score,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"results": items})
}

// Autocomplete suggests previously stored prompts matching a prefix. An empty
// term is not an error; it just yields no suggestions.
func (a *App) Autocomplete(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	term := search.NormalizeTerm(req.SearchTerm)
	if term == "" {
		a.json(w, http.StatusOK, map[string]any{"suggestions": []string{}})
		return
	}

	suggestions, err := a.Houses.Suggest(r.Context(), term, autocompleteLimit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("autocomplete: query failed")
		a.error(w, http.StatusInternalServerError, "Error getting suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	a.json(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

type saveHouseRequest struct {
	Prompt    string `json:"prompt"`
	ImageURL  string `json:"imageUrl"`
	ImageData string `json:"imageData"`
}

// SaveHouse inserts a house directly, bypassing the job pipeline. Used by
// clients that already hold a materialized image.
func (a *App) SaveHouse(w http.ResponseWriter, r *http.Request) {
	var req saveHouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" || strings.TrimSpace(req.ImageURL) == "" || strings.TrimSpace(req.ImageData) == "" {
		a.error(w, http.StatusBadRequest, "prompt, imageUrl and imageData are required")
		return
	}

	house := &domain.House{
		ID:        uuid.NewString(),
		Prompt:    req.Prompt,
		ImageURL:  req.ImageURL,
		ImageData: req.ImageData,
	}
	if err := a.Houses.Create(r.Context(), house); err != nil {
		a.Logger.Error().Err(err).Msg("save-house: insert failed")
		a.error(w, http.StatusInternalServerError, "Failed to save house")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"success": true, "id": house.ID})
}
