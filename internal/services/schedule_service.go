package services

import (
	"context"
	"duty-schedule-service/internal/domain"
	"duty-schedule-service/internal/ports"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// ScheduleService answers worker/date and worker/week schedule queries and
// route optimization requests. The algorithmic work lives in the pure
// package-level functions; the service only adds port access, merging, and
// the degradation policy for optional inputs.
type ScheduleService struct {
	repo    ports.RoutineRepository
	weather ports.WeatherProvider
	now     func() time.Time
	logger  zerolog.Logger
}

func NewScheduleService(repo ports.RoutineRepository, weather ports.WeatherProvider, logger zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		repo:    repo,
		weather: weather,
		now:     time.Now,
		logger:  logger,
	}
}

// ScheduleForDate expands every applicable routine for the worker into
// instances on the given date, merged and sorted by start time. Unless
// skipRelevanceFilter is set, the result is narrowed to what matters right
// now, falling back to a next-day preview after hours.
//
// Only the persistence port's own errors propagate; "nothing scheduled" is
// an empty list, not a failure.
func (s *ScheduleService) ScheduleForDate(
	ctx context.Context,
	workerID string,
	date time.Time,
	skipRelevanceFilter bool,
) ([]domain.ScheduleInstance, error) {
	instances, err := s.expandForDate(ctx, workerID, date)
	if err != nil {
		return nil, fmt.Errorf("schedule for date: %w", err)
	}

	if skipRelevanceFilter {
		return instances, nil
	}

	return SelectRelevant(instances, s.now(), func(next time.Time) ([]domain.ScheduleInstance, error) {
		return s.expandForDate(ctx, workerID, next)
	}), nil
}

// ActiveSequences returns today's route stops the worker should currently
// be at: now falls within [arrival, arrival+duration].
func (s *ScheduleService) ActiveSequences(ctx context.Context, workerID string) ([]domain.RouteSequence, error) {
	now := s.now()

	route, err := s.repo.FetchRoute(ctx, workerID, now)
	if err != nil {
		return nil, fmt.Errorf("active sequences: fetch route for %q: %w", workerID, err)
	}
	if route == nil {
		return nil, nil
	}

	active := make([]domain.RouteSequence, 0, len(route.Sequences))
	for _, seq := range route.Sequences {
		if !now.Before(seq.ArrivalTime) && !now.After(seq.EndTime()) {
			active = append(active, seq)
		}
	}
	return active, nil
}

// UpcomingSequences returns today's route stops starting within the next
// three hours, earliest first, capped at limit when limit > 0.
func (s *ScheduleService) UpcomingSequences(ctx context.Context, workerID string, limit int) ([]domain.RouteSequence, error) {
	now := s.now()

	route, err := s.repo.FetchRoute(ctx, workerID, now)
	if err != nil {
		return nil, fmt.Errorf("upcoming sequences: fetch route for %q: %w", workerID, err)
	}
	if route == nil {
		return nil, nil
	}

	upcoming := make([]domain.RouteSequence, 0, len(route.Sequences))
	for _, seq := range route.Sequences {
		lead := seq.ArrivalTime.Sub(now)
		if lead > 0 && lead <= upcomingWindow {
			upcoming = append(upcoming, seq)
		}
	}

	slices.SortFunc(upcoming, func(a, b domain.RouteSequence) int {
		return a.ArrivalTime.Compare(b.ArrivalTime)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

// OptimizedRoute fetches today's route and reorders it around dependencies
// and current weather. A missing route returns nil. A weather-port outage
// degrades to the stored order rather than failing the request.
func (s *ScheduleService) OptimizedRoute(ctx context.Context, workerID string) (*domain.WorkerRoute, error) {
	route, err := s.repo.FetchRoute(ctx, workerID, s.now())
	if err != nil {
		return nil, fmt.Errorf("optimized route: fetch route for %q: %w", workerID, err)
	}
	if route == nil {
		return nil, nil
	}

	snapshot, err := s.weather.CurrentWeather(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("worker_id", workerID).
			Msg("weather unavailable, returning route unmodified")
		return route, nil
	}

	return OptimizeRoute(route, snapshot), nil
}

// expandForDate loads the worker's definitions and derives the full,
// unfiltered instance list for one date, sorted by start time. The
// definition's own duration wins; the frequency default only covers
// definitions without one.
func (s *ScheduleService) expandForDate(ctx context.Context, workerID string, date time.Time) ([]domain.ScheduleInstance, error) {
	defs, err := s.repo.FetchRoutineDefinitions(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("fetch routine definitions for %q: %w", workerID, err)
	}

	instances := make([]domain.ScheduleInstance, 0, len(defs))
	for _, def := range defs {
		for _, slot := range ExpandRecurrence(def.Rule, date) {
			duration := def.DurationMinutes
			if duration <= 0 {
				duration = slot.DurationMinutes
			}

			instances = append(instances, domain.ScheduleInstance{
				ID:               fmt.Sprintf("%s-%s", def.ID, slot.Start.Format("20060102-1504")),
				RoutineID:        def.ID,
				BuildingID:       def.BuildingID,
				Start:            slot.Start,
				End:              slot.Start.Add(time.Duration(duration) * time.Minute),
				Category:         def.Category,
				WeatherDependent: def.WeatherDependent,
				RequiresPhoto:    def.RequiresPhoto,
			})
		}
	}

	sortInstancesByStart(instances)
	return instances, nil
}
