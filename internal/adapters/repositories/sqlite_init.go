package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRoutinesQuery := `
	CREATE TABLE IF NOT EXISTS routines (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL,
		building_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		recurrence TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		weather_dependent INTEGER NOT NULL DEFAULT 0,
		requires_photo INTEGER NOT NULL DEFAULT 0,
		priority INTEGER NOT NULL DEFAULT 0
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL,
		name TEXT NOT NULL,
		day_of_week INTEGER NOT NULL
	);
	`

	createSequencesQuery := `
	CREATE TABLE IF NOT EXISTS route_sequences (
		id TEXT PRIMARY KEY,
		route_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		building_id TEXT NOT NULL,
		arrival TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		is_flexible INTEGER NOT NULL DEFAULT 0,
		depends_on TEXT NOT NULL DEFAULT ''
	);
	`

	createOperationsQuery := `
	CREATE TABLE IF NOT EXISTS sequence_operations (
		sequence_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		weather_sensitive INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (sequence_id, position)
	);
	`

	createIndexQueries := `
	CREATE INDEX IF NOT EXISTS idx_routines_worker ON routines(worker_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_routes_worker_day ON routes(worker_id, day_of_week);
	CREATE INDEX IF NOT EXISTS idx_sequences_route ON route_sequences(route_id);
	`

	statements := []string{
		createRoutinesQuery,
		createRoutesQuery,
		createSequencesQuery,
		createOperationsQuery,
		createIndexQueries,
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

// Populate the database from the routine and route seed files.
func SeedFromJSON(db *sql.DB, routinesPath, routesPath string) error {
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
	INSERT OR REPLACE INTO routines (
		id, worker_id, building_id, name, category, recurrence,
		duration_minutes, weather_dependent, requires_photo, priority
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	routineStmt, err := tx.Prepare(routineQuery)
	if err != nil {
		return fmt.Errorf("seed routines: prepare insert: %w", err)
	}
	defer routineStmt.Close()

	for _, r := range routines {
		_, err := routineStmt.Exec(
			r.ID, r.WorkerID, r.BuildingID, r.Name, r.Category, r.Recurrence,
			r.DurationMinutes, r.WeatherDependent, r.RequiresPhoto, r.Priority,
		)
		if err != nil {
			return fmt.Errorf("seed routines: insert id=%s: %w", r.ID, err)
		}
	}

	routeStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO routes (id, worker_id, name, day_of_week)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed routes: prepare insert: %w", err)
	}
	defer routeStmt.Close()

	seqStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO route_sequences (
		id, route_id, position, building_id, arrival,
		duration_minutes, is_flexible, depends_on
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed sequences: prepare insert: %w", err)
	}
	defer seqStmt.Close()

	opStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO sequence_operations (sequence_id, position, name, weather_sensitive)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed operations: prepare insert: %w", err)
	}
	defer opStmt.Close()

	for _, route := range routes {
		if _, err := routeStmt.Exec(route.ID, route.WorkerID, route.Name, route.DayOfWeek); err != nil {
			return fmt.Errorf("seed routes: insert id=%s: %w", route.ID, err)
		}

		for pos, seq := range route.Sequences {
			_, err := seqStmt.Exec(
				seq.ID, route.ID, pos, seq.BuildingID, seq.Arrival,
				seq.DurationMinutes, seq.IsFlexible, strings.Join(seq.DependsOn, ","),
			)
			if err != nil {
				return fmt.Errorf("seed sequences: insert id=%s: %w", seq.ID, err)
			}

			for opPos, op := range seq.Operations {
				if _, err := opStmt.Exec(seq.ID, opPos, op.Name, op.WeatherSensitive); err != nil {
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
