package httpapi

import (
	"net/http"

	"dreamhouse/internal/http/handlers"
	localmw "dreamhouse/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *handlers.App, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(
		localmw.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		localmw.CORS(corsOrigins),
		localmw.Logger(app.Logger),
	)

	r.Get("/v1/healthz", app.Health)

	r.Post("/start-generation", app.StartGeneration)
	r.Get("/check-status/{jobId}", app.CheckStatus)

	r.Get("/houses", app.HousesList)
	r.Get("/house/{id}", app.HouseImage)
	r.Post("/search", app.Search)
	r.Post("/autocomplete", app.Autocomplete)
	r.Post("/save-house", app.SaveHouse)
	r.Post("/fetch-image", app.FetchImage)

	return r
}
