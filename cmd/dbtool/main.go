package main

import (
	"database/sql"
	"duty-schedule-service/internal/adapters/repositories"
	"duty-schedule-service/internal/config"
	"duty-schedule-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool initializes and seeds the shared Postgres definitions store.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	routinesSeed := config.Get("ROUTINES_SEED_PATH", "data/seeds/routines.json")
	routesSeed := config.Get("ROUTES_SEED_PATH", "data/seeds/routes.json")

	if err := initAndSeed(db, routinesSeed, routesSeed); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(db *sql.DB, routinesSeed, routesSeed string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchemaPostgres(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSONPostgres(db, routinesSeed, routesSeed); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
