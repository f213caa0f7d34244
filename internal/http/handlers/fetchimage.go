package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type fetchImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// FetchImage materializes an arbitrary image URL into a data URI on behalf of
// a client. Provider locators expire, so clients call this promptly after a
// synchronous generation.
func (a *App) FetchImage(w http.ResponseWriter, r *http.Request) {
	var req fetchImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		a.error(w, http.StatusBadRequest, "Image URL is required")
		return
	}

	imageData, err := a.Fetcher.Fetch(r.Context(), req.ImageURL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("fetch-image: materialize failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch image")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "imageData": imageData})
}
