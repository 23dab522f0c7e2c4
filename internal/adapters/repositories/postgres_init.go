package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Postgres flavor of schema init and seeding, used by cmd/dbtool when the
// definitions live in a shared database instead of the local SQLite file.

func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS routines (
			id TEXT PRIMARY KEY,
			worker_id TEXT NOT NULL,
			building_id TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			recurrence TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			weather_dependent BOOLEAN NOT NULL DEFAULT FALSE,
			requires_photo BOOLEAN NOT NULL DEFAULT FALSE,
			priority INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS routes (
			id TEXT PRIMARY KEY,
			worker_id TEXT NOT NULL,
			name TEXT NOT NULL,
			day_of_week INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS route_sequences (
			id TEXT PRIMARY KEY,
			route_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			building_id TEXT NOT NULL,
			arrival TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			is_flexible BOOLEAN NOT NULL DEFAULT FALSE,
			depends_on TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS sequence_operations (
			sequence_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			weather_sensitive BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (sequence_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_routines_worker ON routines(worker_id);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_routes_worker_day ON routes(worker_id, day_of_week);`,
		`CREATE INDEX IF NOT EXISTS idx_sequences_route ON route_sequences(route_id);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

func SeedFromJSONPostgres(db *sql.DB, routinesPath, routesPath string) error {
	routines, err := loadRoutineSeeds(routinesPath)
	if err != nil {
		return err
	}

	routes, err := loadRouteSeeds(routesPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	routineQuery := `
	INSERT INTO routines (
		id, worker_id, building_id, name, category, recurrence,
		duration_minutes, weather_dependent, requires_photo, priority
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE SET
		worker_id = EXCLUDED.worker_id,
		building_id = EXCLUDED.building_id,
		name = EXCLUDED.name,
		category = EXCLUDED.category,
		recurrence = EXCLUDED.recurrence,
		duration_minutes = EXCLUDED.duration_minutes,
		weather_dependent = EXCLUDED.weather_dependent,
		requires_photo = EXCLUDED.requires_photo,
		priority = EXCLUDED.priority;
	`
	for _, r := range routines {
		_, err := tx.Exec(routineQuery,
			r.ID, r.WorkerID, r.BuildingID, r.Name, r.Category, r.Recurrence,
			r.DurationMinutes, r.WeatherDependent, r.RequiresPhoto, r.Priority,
		)
		if err != nil {
			return fmt.Errorf("seed routines: insert id=%s: %w", r.ID, err)
		}
	}

	routeQuery := `
	INSERT INTO routes (id, worker_id, name, day_of_week)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET
		worker_id = EXCLUDED.worker_id,
		name = EXCLUDED.name,
		day_of_week = EXCLUDED.day_of_week;
	`
	seqQuery := `
	INSERT INTO route_sequences (
		id, route_id, position, building_id, arrival,
		duration_minutes, is_flexible, depends_on
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		route_id = EXCLUDED.route_id,
		position = EXCLUDED.position,
		building_id = EXCLUDED.building_id,
		arrival = EXCLUDED.arrival,
		duration_minutes = EXCLUDED.duration_minutes,
		is_flexible = EXCLUDED.is_flexible,
		depends_on = EXCLUDED.depends_on;
	`
	opQuery := `
	INSERT INTO sequence_operations (sequence_id, position, name, weather_sensitive)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (sequence_id, position) DO UPDATE SET
		name = EXCLUDED.name,
		weather_sensitive = EXCLUDED.weather_sensitive;
	`

	for _, route := range routes {
		if _, err := tx.Exec(routeQuery, route.ID, route.WorkerID, route.Name, route.DayOfWeek); err != nil {
			return fmt.Errorf("seed routes: insert id=%s: %w", route.ID, err)
		}

		for pos, seq := range route.Sequences {
			_, err := tx.Exec(seqQuery,
				seq.ID, route.ID, pos, seq.BuildingID, seq.Arrival,
				seq.DurationMinutes, seq.IsFlexible, strings.Join(seq.DependsOn, ","),
			)
			if err != nil {
				return fmt.Errorf("seed sequences: insert id=%s: %w", seq.ID, err)
			}

			for opPos, op := range seq.Operations {
				if _, err := tx.Exec(opQuery, seq.ID, opPos, op.Name, op.WeatherSensitive); err != nil {
					return fmt.Errorf("seed operations: insert sequence=%s #%d: %w", seq.ID, opPos+1, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
