package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"dreamhouse/internal/adapter/repo"
	"dreamhouse/internal/generation"
	"dreamhouse/internal/http/handlers"
	"dreamhouse/internal/http/httpapi"
	"dreamhouse/internal/imagegen"
	"dreamhouse/internal/infra"
	"dreamhouse/internal/materialize"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	jobs := repo.NewJobRepository(dbpool)
	houses := repo.NewHouseRepository(dbpool)

	generator := imagegen.NewClient(imagegen.Options{
		BaseURL: cfg.ProviderBaseURL,
		APIKey:  cfg.ProviderAPIKey,
		Model:   cfg.ProviderModel,
	})
	fetcher := materialize.NewHTTPFetcher(&http.Client{}, cfg.FetchTimeout)
	orchestrator := generation.NewOrchestrator(jobs, houses, generator, fetcher, logger)

	app := handlers.NewApp(jobs, houses, orchestrator, fetcher, logger, cfg.SubmitTimeout)
	router := httpapi.NewRouter(app, cfg.CORSOrigins)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown. In-flight generation goroutines are fire-and-forget
	// and are not joined; an interrupted job stays in its last persisted state.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
