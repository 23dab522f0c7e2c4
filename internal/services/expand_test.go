package services

import (
	"duty-schedule-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-03 is a Tuesday, 2026-03-04 a Wednesday.
var (
	tuesday   = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
)

func TestExpandRecurrenceDeterminism(t *testing.T) {
	rule := domain.ParseRecurrence("FREQ=DAILY;BYHOUR=7,9;BYMINUTE=15,45")

	first := ExpandRecurrence(rule, tuesday)
	second := ExpandRecurrence(rule, tuesday)

	require.Len(t, first, 4)
	assert.Equal(t, first, second)
}

func TestExpandRecurrenceDayFilter(t *testing.T) {
	rule := domain.ParseRecurrence("FREQ=DAILY;BYDAY=MO,WE,FR;BYHOUR=7")

	assert.Empty(t, ExpandRecurrence(rule, tuesday))

	slots := ExpandRecurrence(rule, wednesday)
	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2026, 3, 4, 7, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, 60, slots[0].DurationMinutes)
}

func TestExpandRecurrenceCrossProduct(t *testing.T) {
	rule := domain.ParseRecurrence("FREQ=WEEKLY;BYDAY=TU,TH;BYHOUR=9,14")

	slots := ExpandRecurrence(rule, tuesday)
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC), slots[1].Start)
	for _, slot := range slots {
		assert.Equal(t, 120, slot.DurationMinutes)
	}
}

// A weekly rule without BYDAY expands every day. Preserved behavior from
// the original scheduler.
func TestExpandRecurrenceWeeklyWithoutByDay(t *testing.T) {
	rule := domain.ParseRecurrence("FREQ=WEEKLY")

	for day := 0; day < 7; day++ {
		date := tuesday.AddDate(0, 0, day)
		slots := ExpandRecurrence(rule, date)
		require.Len(t, slots, 1, "expected one slot on %s", date.Weekday())
		assert.Equal(t, 10, slots[0].Start.Hour())
	}
}

func TestExpandRecurrenceMonthlyWindow(t *testing.T) {
	rule := domain.ParseRecurrence("FREQ=MONTHLY")

	// Monday March 2nd: within the first seven days, a weekday.
	slots := ExpandRecurrence(rule, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.Len(t, slots, 1)
	assert.Equal(t, 11, slots[0].Start.Hour())
	assert.Equal(t, 180, slots[0].DurationMinutes)

	// Sunday March 1st: first seven days but a weekend.
	assert.Empty(t, ExpandRecurrence(rule, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	// Monday March 9th: a weekday but past the window.
	assert.Empty(t, ExpandRecurrence(rule, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
}

func TestExpandRecurrenceDefaults(t *testing.T) {
	daily := domain.ParseRecurrence("FREQ=DAILY")
	slots := ExpandRecurrence(daily, tuesday)
	require.Len(t, slots, 1)
	assert.Equal(t, 9, slots[0].Start.Hour())
	assert.Equal(t, 0, slots[0].Start.Minute())
	assert.Equal(t, 60, slots[0].DurationMinutes)
}

func TestExpandRecurrenceNilRule(t *testing.T) {
	assert.Empty(t, ExpandRecurrence(nil, tuesday))
	assert.Empty(t, ExpandRecurrence(domain.ParseRecurrence("FREQ=YEARLY"), tuesday))
}
