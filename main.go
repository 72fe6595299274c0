// main.go
//
// Entry point for the Enigma simulator server.
// Responsibilities:
//   - Load .env and configure logging.
//   - Read and validate the rotor wiring once.
//   - Open the history database and run migrations.
//   - Start the HTTP server.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/enigma/assets"
	"github.com/robalobadob/enigma/internal/database"
	"github.com/robalobadob/enigma/internal/enigma"
	"github.com/robalobadob/enigma/internal/httpserver"
	"github.com/robalobadob/enigma/internal/logging"
	"github.com/robalobadob/enigma/internal/metrics"
	"github.com/robalobadob/enigma/internal/store"
)

func main() {
	_ = godotenv.Load()
	if _, err := logging.Setup(logging.Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogOutput: getEnv("LOG_OUTPUT", "console"),
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	cfg, err := assets.LoadWiring(os.Getenv("ENIGMA_WIRING_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load wiring")
	}
	wiring, err := enigma.NewWiring(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("refusing to start with invalid wiring")
	}

	db, err := database.Open(getEnv("DB_PATH", "./data/enigma.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv := httpserver.New(httpserver.Options{
		Store:   store.NewMemoryStore(),
		DB:      db,
		Wiring:  wiring,
		Metrics: metrics.New(),
	})
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting enigma server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
