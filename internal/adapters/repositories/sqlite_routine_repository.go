package repositories

import (
	"context"
	"database/sql"
	"duty-schedule-service/internal/domain"
	"duty-schedule-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite-backed implementation of the RoutineRepository port.
//
// Rule text is parsed into the structured RecurrenceRule exactly once
// here, at the load boundary; expansion never re-parses it.
type SqliteRoutineRepository struct{ DB *sql.DB }

func NewSqliteRoutineRepository(db *sql.DB) *SqliteRoutineRepository {
	return &SqliteRoutineRepository{DB: db}
}

// Return every routine definition assigned to the worker.
func (s *SqliteRoutineRepository) FetchRoutineDefinitions(ctx context.Context, workerID string) (_ []*domain.RoutineDefinition, err error) {
	defer obs.Time(ctx, "repo.FetchRoutineDefinitions")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite routine repository: DB is nil")
	}

	query := `
	SELECT
		id,
		worker_id,
		building_id,
		name,
		category,
		recurrence,
		duration_minutes,
		weather_dependent,
		requires_photo,
		priority
	FROM routines
	WHERE worker_id = ?
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("fetch routine definitions: query routines table: %w", err)
	}
	defer rows.Close()

	defs := make([]*domain.RoutineDefinition, 0, 16)
	for rows.Next() {
		var (
			def      domain.RoutineDefinition
			ruleText string
		)
		err := rows.Scan(
			&def.ID,
			&def.WorkerID,
			&def.BuildingID,
			&def.Name,
			&def.Category,
			&ruleText,
			&def.DurationMinutes,
			&def.WeatherDependent,
			&def.RequiresPhoto,
			&def.Priority,
		)
		if err != nil {
			return nil, fmt.Errorf("fetch routine definitions: scan row: %w", err)
		}

		def.Rule = domain.ParseRecurrence(ruleText)
		defs = append(defs, &def)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch routine definitions: row iteration: %w", err)
	}

	return defs, nil
}

// Return the worker's route for the date's weekday, with arrival times
// anchored on the date itself. nil means no route exists for that day.
func (s *SqliteRoutineRepository) FetchRoute(ctx context.Context, workerID string, date time.Time) (_ *domain.WorkerRoute, err error) {
	defer obs.Time(ctx, "repo.FetchRoute")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite routine repository: DB is nil")
	}

	route := &domain.WorkerRoute{
		WorkerID:  workerID,
		DayOfWeek: date.Weekday(),
	}

	routeQuery := `
	SELECT id, name
	FROM routes
	WHERE worker_id = ? AND day_of_week = ?
	LIMIT 1;
	`
	err = s.DB.QueryRowContext(ctx, routeQuery, workerID, int(date.Weekday())).
		Scan(&route.ID, &route.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch route: query routes table: %w", err)
	}

	seqQuery := `
	SELECT
		id,
		building_id,
		arrival,
		duration_minutes,
		is_flexible,
		depends_on
	FROM route_sequences
	WHERE route_id = ?
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, seqQuery, route.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch route: query route_sequences table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			seq       domain.RouteSequence
			arrival   string
			dependsOn string
		)
		err := rows.Scan(
			&seq.ID,
			&seq.BuildingID,
			&arrival,
			&seq.DurationMinutes,
			&seq.IsFlexible,
			&dependsOn,
		)
		if err != nil {
			return nil, fmt.Errorf("fetch route: scan sequence row: %w", err)
		}

		seq.ArrivalTime, err = anchorArrival(arrival, date)
		if err != nil {
			return nil, fmt.Errorf("fetch route: sequence %q: %w", seq.ID, err)
		}
		seq.DependsOn = splitDependencies(dependsOn)

		route.Sequences = append(route.Sequences, seq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch route: sequence row iteration: %w", err)
	}

	for i := range route.Sequences {
		ops, err := s.fetchOperations(ctx, route.Sequences[i].ID)
		if err != nil {
			return nil, err
		}
		route.Sequences[i].Operations = ops
	}

	return route, nil
}

func (s *SqliteRoutineRepository) fetchOperations(ctx context.Context, sequenceID string) ([]domain.SequenceOperation, error) {
	query := `
	SELECT name, weather_sensitive
	FROM sequence_operations
	WHERE sequence_id = ?
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query, sequenceID)
	if err != nil {
		return nil, fmt.Errorf("fetch operations for sequence %q: %w", sequenceID, err)
	}
	defer rows.Close()

	var ops []domain.SequenceOperation
	for rows.Next() {
		var op domain.SequenceOperation
		if err := rows.Scan(&op.Name, &op.WeatherSensitive); err != nil {
			return nil, fmt.Errorf("fetch operations for sequence %q: scan row: %w", sequenceID, err)
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch operations for sequence %q: row iteration: %w", sequenceID, err)
	}

	return ops, nil
}

// anchorArrival combines a stored "HH:MM" wall-clock time with the query
// date so sequence arrivals compare directly against time.Now.
func anchorArrival(arrival string, date time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(arrival))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse arrival %q: %w", arrival, err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

func splitDependencies(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	deps := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			deps = append(deps, p)
		}
	}
	return deps
}
