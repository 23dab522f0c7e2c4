package services

import (
	"duty-schedule-service/internal/domain"
	"time"
)

// Slot is one concrete occurrence of a recurrence rule on a date, carrying
// the frequency's default duration for definitions that lack their own.
type Slot struct {
	Start           time.Time
	DurationMinutes int
}

// Default time-of-day and slot duration per frequency, applied when the
// rule text carried no BYHOUR/BYMINUTE.
const (
	dailyDefaultHour   = 9
	weeklyDefaultHour  = 10
	monthlyDefaultHour = 11

	dailyDefaultMinutes   = 60
	weeklyDefaultMinutes  = 120
	monthlyDefaultMinutes = 180
)

// ExpandRecurrence turns one rule and one calendar date into zero or more
// concrete slots. Multiple BYHOUR/BYMINUTE values produce the full
// hour x minute cross-product. A nil rule (unsupported frequency) expands
// to nothing; that is a valid result, not an error.
//
// The algorithm is deterministic: identical inputs always produce
// identical output.
func ExpandRecurrence(rule domain.RecurrenceRule, date time.Time) []Slot {
	switch r := rule.(type) {
	case domain.DailyRule:
		if len(r.Weekdays) > 0 && !r.Weekdays.Contains(date.Weekday()) {
			return nil
		}
		return buildSlots(date, r.Hours, r.Minutes, dailyDefaultHour, dailyDefaultMinutes)

	case domain.WeeklyRule:
		// A weekly rule without BYDAY expands every day, exactly like a
		// daily rule. Existing rule data relies on this; see DESIGN.md
		// before changing.
		if len(r.Weekdays) > 0 && !r.Weekdays.Contains(date.Weekday()) {
			return nil
		}
		return buildSlots(date, r.Hours, r.Minutes, weeklyDefaultHour, weeklyDefaultMinutes)

	case domain.MonthlyRule:
		// Approximates "first weekday of the month": any Monday-Friday
		// falling in the first seven days.
		if date.Day() > 7 {
			return nil
		}
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return nil
		}
		return buildSlots(date, r.Hours, r.Minutes, monthlyDefaultHour, monthlyDefaultMinutes)

	default:
		return nil
	}
}

func buildSlots(date time.Time, hours, minutes []int, defaultHour, defaultDuration int) []Slot {
	if len(hours) == 0 {
		hours = []int{defaultHour}
	}
	if len(minutes) == 0 {
		minutes = []int{0}
	}

	slots := make([]Slot, 0, len(hours)*len(minutes))
	for _, h := range hours {
		for _, m := range minutes {
			start := time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
			slots = append(slots, Slot{Start: start, DurationMinutes: defaultDuration})
		}
	}
	return slots
}
