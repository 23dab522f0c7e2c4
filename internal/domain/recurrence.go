package domain

import (
	"strconv"
	"strings"
	"time"
)

// WeekdaySet is the set of weekdays a rule is restricted to.
// An empty set means the rule carries no weekday restriction.
type WeekdaySet map[time.Weekday]struct{}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	_, ok := s[d]
	return ok
}

// RecurrenceRule is the parsed form of a routine's recurrence text.
// One variant exists per supported frequency. Rule text with any other
// frequency parses to nil, which expands to zero instances downstream
// (unsupported recurrence is not an error).
type RecurrenceRule interface {
	frequency() string
}

// DailyRule fires every day, or only on the listed weekdays when the
// rule text carried a BYDAY clause.
type DailyRule struct {
	Hours    []int
	Minutes  []int
	Weekdays WeekdaySet
}

// WeeklyRule fires on the listed weekdays. Without a BYDAY clause it
// expands every day, same as a daily rule; existing rule data relies on
// that behavior.
type WeeklyRule struct {
	Hours    []int
	Minutes  []int
	Weekdays WeekdaySet
}

// MonthlyRule fires on the first weekday window of each month.
type MonthlyRule struct {
	Hours   []int
	Minutes []int
}

func (DailyRule) frequency() string   { return "DAILY" }
func (WeeklyRule) frequency() string  { return "WEEKLY" }
func (MonthlyRule) frequency() string { return "MONTHLY" }

var weekdayCodes = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

// ParseRecurrence parses rule text of the form "KEY=VALUE;KEY=VALUE".
// Recognized keys are FREQ, BYHOUR, BYMINUTE and BYDAY; anything else is
// skipped so newer ingestion layers can add fields without breaking old
// readers. Returns nil when FREQ is missing or unsupported.
func ParseRecurrence(text string) RecurrenceRule {
	var (
		freq    string
		hours   []int
		minutes []int
		days    = WeekdaySet{}
	)

	for _, token := range strings.Split(text, ";") {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "FREQ":
			freq = strings.ToUpper(strings.TrimSpace(value))
		case "BYHOUR":
			hours = parseIntList(value)
		case "BYMINUTE":
			minutes = parseIntList(value)
		case "BYDAY":
			for _, code := range strings.Split(value, ",") {
				if d, ok := weekdayCodes[strings.ToUpper(strings.TrimSpace(code))]; ok {
					days[d] = struct{}{}
				}
			}
		}
	}

	switch freq {
	case "DAILY":
		return DailyRule{Hours: hours, Minutes: minutes, Weekdays: days}
	case "WEEKLY":
		return WeeklyRule{Hours: hours, Minutes: minutes, Weekdays: days}
	case "MONTHLY":
		return MonthlyRule{Hours: hours, Minutes: minutes}
	default:
		return nil
	}
}

func parseIntList(value string) []int {
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
