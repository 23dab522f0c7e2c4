package main

import (
	"database/sql"
	"duty-schedule-service/internal/adapters/repositories"
	"duty-schedule-service/internal/adapters/weather"
	"duty-schedule-service/internal/api"
	"duty-schedule-service/internal/config"
	"duty-schedule-service/internal/logging"
	"duty-schedule-service/internal/ports"
	"duty-schedule-service/internal/services"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Open-Meteo, Redis) behind ports and
// starts the HTTP server. No component reaches for process-wide state;
// everything is constructed once here and passed down.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	logger := logging.Setup(config.Get("ENVIRONMENT", "production"))

	dbPath := config.Get("DB_PATH", "data/app.db")
	routinesSeed := config.Get("ROUTINES_SEED_PATH", "data/seeds/routines.json")
	routesSeed := config.Get("ROUTES_SEED_PATH", "data/seeds/routes.json")
	port := config.Get("PORT", "8080")

	// Forecast site for the service area.
	lat := config.GetFloat("SITE_LAT", 33.4484)
	lon := config.GetFloat("SITE_LON", -112.0740)

	db, err := openDB(dbPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, routinesSeed, routesSeed); err != nil {
		logger.Fatal().Err(err).Msg("init and seed database")
	}

	repo := repositories.NewSqliteRoutineRepository(db)

	var weatherProvider ports.WeatherProvider = weather.NewOpenMeteoProvider(lat, lon)
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		weatherProvider = weather.NewRedisWeatherCache(client, weatherProvider, 10*time.Minute)
		logger.Info().Str("addr", addr).Msg("weather snapshot cache enabled")
	}

	svc := services.NewScheduleService(repo, weatherProvider, logger)
	router := api.NewRouter(svc)

	logger.Info().Str("addr", ":"+port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal().Err(srv.ListenAndServe()).Msg("server exited")
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, routinesSeed, routesSeed string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, routinesSeed, routesSeed); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
