package repositories

import (
	"context"
	"database/sql"
	"duty-schedule-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// In-memory SQLite is per-connection; keep the pool at one.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

func TestFetchRoutineDefinitionsParsesRules(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`
	INSERT INTO routines (
		id, worker_id, building_id, name, category, recurrence,
		duration_minutes, weather_dependent, requires_photo, priority
	)
	VALUES
		('rt-1', 'w-101', 'b-1', 'Lobby sweep', 'cleaning', 'FREQ=DAILY;BYHOUR=7', 45, 0, 0, 2),
		('rt-2', 'w-101', 'b-1', 'Hosing', 'cleaning', 'FREQ=WEEKLY;BYDAY=MO', 90, 1, 1, 3),
		('rt-3', 'w-202', 'b-2', 'Other worker', 'cleaning', 'FREQ=DAILY', 30, 0, 0, 1);
	`)
	require.NoError(t, err)

	repo := NewSqliteRoutineRepository(db)
	defs, err := repo.FetchRoutineDefinitions(context.Background(), "w-101")
	require.NoError(t, err)
	require.Len(t, defs, 2)

	daily, ok := defs[0].Rule.(domain.DailyRule)
	require.True(t, ok, "rule should be parsed at the load boundary")
	assert.Equal(t, []int{7}, daily.Hours)

	assert.True(t, defs[1].WeatherDependent)
	assert.True(t, defs[1].RequiresPhoto)
	_, ok = defs[1].Rule.(domain.WeeklyRule)
	assert.True(t, ok)
}

func TestFetchRouteAnchorsArrivals(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`
	INSERT INTO routes (id, worker_id, name, day_of_week)
	VALUES ('route-1', 'w-101', 'Monday rounds', 1);

	INSERT INTO route_sequences (
		id, route_id, position, building_id, arrival,
		duration_minutes, is_flexible, depends_on
	)
	VALUES
		('seq-1', 'route-1', 0, 'b-1', '07:00', 60, 0, ''),
		('seq-2', 'route-1', 1, 'b-1', '08:30', 90, 1, 'seq-1');

	INSERT INTO sequence_operations (sequence_id, position, name, weather_sensitive)
	VALUES
		('seq-1', 0, 'Unlock', 0),
		('seq-2', 0, 'Walkway hosing', 1);
	`)
	require.NoError(t, err)

	repo := NewSqliteRoutineRepository(db)

	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	route, err := repo.FetchRoute(context.Background(), "w-101", monday)
	require.NoError(t, err)
	require.NotNil(t, route)

	assert.Equal(t, "route-1", route.ID)
	assert.Equal(t, time.Monday, route.DayOfWeek)
	require.Len(t, route.Sequences, 2)

	first := route.Sequences[0]
	assert.Equal(t, time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), first.ArrivalTime)
	assert.Empty(t, first.DependsOn)

	second := route.Sequences[1]
	assert.Equal(t, []string{"seq-1"}, second.DependsOn)
	assert.True(t, second.IsFlexible)
	assert.True(t, second.HasWeatherSensitiveOperation())
}

func TestFetchRouteAbsenceIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	repo := NewSqliteRoutineRepository(db)

	route, err := repo.FetchRoute(context.Background(), "w-101", time.Now())
	require.NoError(t, err)
	assert.Nil(t, route)
}
