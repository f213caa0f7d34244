package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"dreamhouse/internal/database"
	"dreamhouse/internal/infra"
)

func main() {
	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	migrator, err := database.NewMigrator(dbURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("migrate: connect failed")
	}
	defer migrator.Close()

	if err := migrator.Run(); err != nil {
		logger.Fatal().Err(err).Msg("migrate: failed")
	}
	logger.Info().Msg("migrate: done")
}
