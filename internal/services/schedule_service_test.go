package services

import (
	"context"
	"duty-schedule-service/internal/domain"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo is a hand-rolled RoutineRepository for facade tests.
type stubRepo struct {
	defs  []*domain.RoutineDefinition
	route *domain.WorkerRoute
	err   error

	defCalls   int
	failOnCall int // fail the Nth FetchRoutineDefinitions call (1-based)
}

func (s *stubRepo) FetchRoutineDefinitions(ctx context.Context, workerID string) ([]*domain.RoutineDefinition, error) {
	s.defCalls++
	if s.err != nil {
		return nil, s.err
	}
	if s.failOnCall > 0 && s.defCalls == s.failOnCall {
		return nil, errors.New("store unavailable")
	}
	return s.defs, nil
}

func (s *stubRepo) FetchRoute(ctx context.Context, workerID string, date time.Time) (*domain.WorkerRoute, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.route, nil
}

type stubWeather struct {
	snapshot *domain.WeatherSnapshot
	err      error
}

func (s *stubWeather) CurrentWeather(ctx context.Context) (*domain.WeatherSnapshot, error) {
	return s.snapshot, s.err
}

func newTestService(repo *stubRepo, weather *stubWeather, now time.Time) *ScheduleService {
	svc := NewScheduleService(repo, weather, zerolog.Nop())
	svc.now = func() time.Time { return now }
	return svc
}

func routineDef(id, rule string, durationMinutes int) *domain.RoutineDefinition {
	return &domain.RoutineDefinition{
		ID:              id,
		WorkerID:        "w-101",
		BuildingID:      "b-madison",
		Name:            id,
		Category:        "cleaning",
		Rule:            domain.ParseRecurrence(rule),
		DurationMinutes: durationMinutes,
	}
}

func TestScheduleForDateUnfiltered(t *testing.T) {
	repo := &stubRepo{defs: []*domain.RoutineDefinition{
		routineDef("trash", "FREQ=DAILY;BYHOUR=11,16", 30),
		routineDef("lobby", "FREQ=DAILY;BYHOUR=7;BYMINUTE=30", 45),
	}}
	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &stubWeather{}, date)

	instances, err := svc.ScheduleForDate(context.Background(), "w-101", date, true)
	require.NoError(t, err)
	require.Len(t, instances, 3)

	// Merged across definitions and sorted by start time.
	assert.Equal(t, "lobby", instances[0].RoutineID)
	assert.Equal(t, "trash", instances[1].RoutineID)
	assert.Equal(t, 11, instances[1].Start.Hour())
	assert.Equal(t, 16, instances[2].Start.Hour())

	// The definition's duration wins over the frequency default, and every
	// instance lands on the query date.
	assert.Equal(t, instances[0].Start.Add(45*time.Minute), instances[0].End)
	for _, inst := range instances {
		assert.Equal(t, date.Day(), inst.Start.Day())
	}
}

func TestScheduleForDateRelevanceFilter(t *testing.T) {
	repo := &stubRepo{defs: []*domain.RoutineDefinition{
		routineDef("lobby", "FREQ=DAILY;BYHOUR=7;BYMINUTE=30", 45),
		routineDef("trash", "FREQ=DAILY;BYHOUR=16", 30),
	}}
	now := time.Date(2026, 3, 3, 7, 45, 0, 0, time.UTC)
	svc := newTestService(repo, &stubWeather{}, now)

	instances, err := svc.ScheduleForDate(context.Background(), "w-101", now, false)
	require.NoError(t, err)

	// Only the running lobby duty is relevant at 07:45.
	require.Len(t, instances, 1)
	assert.Equal(t, "lobby", instances[0].RoutineID)
}

func TestScheduleForDateAfterHoursPreview(t *testing.T) {
	repo := &stubRepo{defs: []*domain.RoutineDefinition{
		routineDef("lobby", "FREQ=DAILY;BYHOUR=7;BYMINUTE=30", 45),
	}}
	now := time.Date(2026, 3, 3, 22, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &stubWeather{}, now)

	instances, err := svc.ScheduleForDate(context.Background(), "w-101", now, false)
	require.NoError(t, err)

	// Nothing left today: tomorrow's 07:30 duty previews instead.
	require.Len(t, instances, 1)
	assert.Equal(t, 4, instances[0].Start.Day())
}

func TestScheduleForDatePropagatesLookupFailure(t *testing.T) {
	repo := &stubRepo{err: errors.New("store unavailable")}
	now := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &stubWeather{}, now)

	_, err := svc.ScheduleForDate(context.Background(), "w-101", now, true)
	require.Error(t, err)
}

func TestWeekSchedule(t *testing.T) {
	repo := &stubRepo{defs: []*domain.RoutineDefinition{
		routineDef("lobby", "FREQ=DAILY;BYHOUR=7", 45),
	}}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &stubWeather{}, start)

	week := svc.WeekSchedule(context.Background(), "w-101", start)
	require.Len(t, week, 7)
	for i, inst := range week {
		assert.Equal(t, start.AddDate(0, 0, i).Day(), inst.Start.Day())
	}
}

func TestWeekScheduleSkipsFailedDay(t *testing.T) {
	repo := &stubRepo{
		defs:       []*domain.RoutineDefinition{routineDef("lobby", "FREQ=DAILY;BYHOUR=7", 45)},
		failOnCall: 3,
	}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &stubWeather{}, start)

	// One failed day is skipped, the remaining six still render.
	week := svc.WeekSchedule(context.Background(), "w-101", start)
	assert.Len(t, week, 6)
}

func TestActiveAndUpcomingSequences(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	repo := &stubRepo{route: testRoute(
		sequence("open", day.Add(8*time.Hour), false, false),                   // active until 09:00
		sequence("mid", day.Add(10*time.Hour), true, false),                    // upcoming (90m ahead)
		sequence("late", day.Add(15*time.Hour), true, false),                   // beyond the window
		sequence("first", day.Add(9*time.Hour+15*time.Minute), true, false),    // upcoming (45m ahead)
	)}
	svc := newTestService(repo, &stubWeather{}, now)

	active, err := svc.ActiveSequences(context.Background(), "w-101")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "open", active[0].ID)

	upcoming, err := svc.UpcomingSequences(context.Background(), "w-101", 5)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "first", upcoming[0].ID)
	assert.Equal(t, "mid", upcoming[1].ID)

	limited, err := svc.UpcomingSequences(context.Background(), "w-101", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "first", limited[0].ID)
}

func TestSequenceViewsWithoutRoute(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubWeather{}, time.Now())

	active, err := svc.ActiveSequences(context.Background(), "w-101")
	require.NoError(t, err)
	assert.Empty(t, active)

	route, err := svc.OptimizedRoute(context.Background(), "w-101")
	require.NoError(t, err)
	assert.Nil(t, route)
}

func TestOptimizedRouteAppliesWeather(t *testing.T) {
	base := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	repo := &stubRepo{route: testRoute(
		sequence("sensitive", base.Add(time.Hour), true, true),
		sequence("protected", base.Add(2*time.Hour), true, false),
	)}
	svc := newTestService(repo, &stubWeather{snapshot: stormWeather}, base)

	got, err := svc.OptimizedRoute(context.Background(), "w-101")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "route-1"+optimizedSuffix, got.ID)
	assert.Equal(t, []string{"protected", "sensitive"}, sequenceIDs(got))
}

func TestOptimizedRouteDegradesOnWeatherOutage(t *testing.T) {
	base := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	repo := &stubRepo{route: testRoute(
		sequence("sensitive", base.Add(time.Hour), true, true),
		sequence("protected", base.Add(2*time.Hour), true, false),
	)}
	svc := newTestService(repo, &stubWeather{err: errors.New("provider down")}, base)

	// A weather outage returns the stored order, not an error.
	got, err := svc.OptimizedRoute(context.Background(), "w-101")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "route-1", got.ID)
	assert.Equal(t, []string{"sensitive", "protected"}, sequenceIDs(got))
}
