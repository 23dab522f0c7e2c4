package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Seed file shapes. Routines and routes arrive as two JSON documents
// produced by the import pipeline; validation here fails fast so a bad
// export never reaches the query path.

type RoutineSeed struct {
	ID               string `json:"id"`
	WorkerID         string `json:"worker_id"`
	BuildingID       string `json:"building_id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Recurrence       string `json:"recurrence"`
	DurationMinutes  int    `json:"duration_minutes"`
	WeatherDependent bool   `json:"weather_dependent"`
	RequiresPhoto    bool   `json:"requires_photo"`
	Priority         int    `json:"priority"`
}

type OperationSeed struct {
	Name             string `json:"name"`
	WeatherSensitive bool   `json:"weather_sensitive"`
}

type SequenceSeed struct {
	ID              string          `json:"id"`
	BuildingID      string          `json:"building_id"`
	Arrival         string          `json:"arrival"`
	DurationMinutes int             `json:"duration_minutes"`
	IsFlexible      bool            `json:"is_flexible"`
	DependsOn       []string        `json:"depends_on"`
	Operations      []OperationSeed `json:"operations"`
}

type RouteSeed struct {
	ID        string         `json:"id"`
	WorkerID  string         `json:"worker_id"`
	Name      string         `json:"name"`
	DayOfWeek int            `json:"day_of_week"`
	Sequences []SequenceSeed `json:"sequences"`
}

func loadRoutineSeeds(path string) ([]RoutineSeed, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed routines: read %q: %w", path, err)
	}

	var seeds []RoutineSeed
	if err := json.Unmarshal(bytes, &seeds); err != nil {
		return nil, fmt.Errorf("seed routines: parse json: %w", err)
	}

	for i, r := range seeds {
		if strings.TrimSpace(r.ID) == "" || strings.TrimSpace(r.WorkerID) == "" {
			return nil, fmt.Errorf("seed routines: item at index %d: id and worker_id are required", i+1)
		}
		if r.DurationMinutes <= 0 {
			return nil, fmt.Errorf("seed routines: routine %q: duration_minutes must be positive", r.ID)
		}
	}

	return seeds, nil
}

func loadRouteSeeds(path string) ([]RouteSeed, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed routes: read %q: %w", path, err)
	}

	var seeds []RouteSeed
	if err := json.Unmarshal(bytes, &seeds); err != nil {
		return nil, fmt.Errorf("seed routes: parse json: %w", err)
	}

	for i, r := range seeds {
		if strings.TrimSpace(r.ID) == "" || strings.TrimSpace(r.WorkerID) == "" {
			return nil, fmt.Errorf("seed routes: item at index %d: id and worker_id are required", i+1)
		}
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			return nil, fmt.Errorf("seed routes: route %q: day_of_week must be 0-6", r.ID)
		}

		for _, seq := range r.Sequences {
			if strings.TrimSpace(seq.ID) == "" {
				return nil, fmt.Errorf("seed routes: route %q: sequence id is required", r.ID)
			}
			if seq.DurationMinutes <= 0 {
				return nil, fmt.Errorf("seed routes: sequence %q: duration_minutes must be positive", seq.ID)
			}
			if _, err := time.Parse("15:04", seq.Arrival); err != nil {
				return nil, fmt.Errorf("seed routes: sequence %q: arrival %q is not HH:MM", seq.ID, seq.Arrival)
			}
		}
	}

	return seeds, nil
}
