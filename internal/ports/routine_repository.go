package ports

import (
	"context"
	"duty-schedule-service/internal/domain"
	"time"
)

// Port: a boundary for reading schedule definitions from the storage/import
// collaborator. Building and worker references are validated there before
// reaching this core.
type RoutineRepository interface {
	// Return every routine definition assigned to the worker.
	FetchRoutineDefinitions(ctx context.Context, workerID string) ([]*domain.RoutineDefinition, error)

	// Return the worker's route for the date's weekday, or nil when no
	// route exists for that day (absence, not an error).
	FetchRoute(ctx context.Context, workerID string, date time.Time) (*domain.WorkerRoute, error)
}
