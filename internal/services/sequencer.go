package services

import (
	"duty-schedule-service/internal/domain"
	"slices"
)

// Weather decision thresholds: bad weather pushes protected work first.
const (
	precipitationThreshold = 0.6
	windThresholdMph       = 25.0
	forecastWindowHours    = 4
)

const optimizedSuffix = "-optimized"

// OptimizeRoute reorders a worker's day around dependencies and weather.
//
// Non-flexible sequences are anchors and keep their original relative
// order ahead of the flexible block. Flexible sequences split into a
// weather-sensitive and a weather-protected bucket; under high
// precipitation probability or strong wind the protected bucket runs
// first, otherwise the sensitive one does. Dependency resolution then
// places the merged pool, force-placing the earliest-arrival sequence
// whenever nothing is ready, so cycles and dangling references terminate
// instead of looping.
//
// The input route is never mutated and the sequence-id multiset is
// preserved exactly. A nil route returns nil: no route for the day is
// absence, not an error.
func OptimizeRoute(route *domain.WorkerRoute, weather *domain.WeatherSnapshot) *domain.WorkerRoute {
	if route == nil {
		return nil
	}

	var anchors, sensitive, protected []domain.RouteSequence
	for _, seq := range route.Sequences {
		switch {
		case !seq.IsFlexible:
			anchors = append(anchors, seq)
		case seq.HasWeatherSensitiveOperation():
			sensitive = append(sensitive, seq)
		default:
			protected = append(protected, seq)
		}
	}

	// Flexible work is appended as a block after all anchors, not
	// interleaved by stored time slot. See DESIGN.md for the layout choice.
	pool := make([]domain.RouteSequence, 0, len(route.Sequences))
	pool = append(pool, anchors...)
	if shouldShelterSensitiveWork(weather) {
		pool = append(pool, protected...)
		pool = append(pool, sensitive...)
	} else {
		pool = append(pool, sensitive...)
		pool = append(pool, protected...)
	}

	return &domain.WorkerRoute{
		ID:        route.ID + optimizedSuffix,
		WorkerID:  route.WorkerID,
		Name:      route.Name + " (weather optimized)",
		DayOfWeek: route.DayOfWeek,
		Sequences: resolveDependencies(pool),
	}
}

func shouldShelterSensitiveWork(weather *domain.WeatherSnapshot) bool {
	if weather == nil {
		return false
	}
	return weather.MaxPrecipitationProbability(forecastWindowHours) > precipitationThreshold ||
		weather.WindSpeedMph > windThresholdMph
}

// resolveDependencies repeatedly places every sequence whose declared
// dependencies are already placed, keeping candidate order within each
// pass. A pass that places nothing has hit a dependency cycle or an
// unresolvable external reference; the earliest-arrival sequence is then
// forced through, which guarantees termination.
func resolveDependencies(pool []domain.RouteSequence) []domain.RouteSequence {
	placed := make([]domain.RouteSequence, 0, len(pool))
	placedIDs := make(map[string]bool, len(pool))
	remaining := slices.Clone(pool)

	for len(remaining) > 0 {
		var ready, blocked []domain.RouteSequence
		for _, seq := range remaining {
			if dependenciesSatisfied(seq, placedIDs) {
				ready = append(ready, seq)
			} else {
				blocked = append(blocked, seq)
			}
		}

		if len(ready) == 0 {
			earliest := 0
			for i, seq := range blocked {
				if seq.ArrivalTime.Before(blocked[earliest].ArrivalTime) {
					earliest = i
				}
			}
			forced := blocked[earliest]
			placed = append(placed, forced)
			placedIDs[forced.ID] = true
			remaining = slices.Delete(blocked, earliest, earliest+1)
			continue
		}

		for _, seq := range ready {
			placed = append(placed, seq)
			placedIDs[seq.ID] = true
		}
		remaining = blocked
	}

	return placed
}

func dependenciesSatisfied(seq domain.RouteSequence, placedIDs map[string]bool) bool {
	for _, dep := range seq.DependsOn {
		if !placedIDs[dep] {
			return false
		}
	}
	return true
}
