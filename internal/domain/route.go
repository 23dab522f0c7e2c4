package domain

import "time"

// SequenceOperation is a single task performed during a stop, flagged when
// precipitation or wind affects its quality or safety (exterior sweeping,
// hosing, and the like).
type SequenceOperation struct {
	Name             string
	WeatherSensitive bool
}

// RouteSequence is one scheduled visit at a building, bundling one or more
// operations. Non-flexible sequences are anchors: their position in the
// route never changes regardless of weather.
type RouteSequence struct {
	ID              string
	BuildingID      string
	ArrivalTime     time.Time
	DurationMinutes int
	IsFlexible      bool
	DependsOn       []string
	Operations      []SequenceOperation
}

func (s RouteSequence) HasWeatherSensitiveOperation() bool {
	for _, op := range s.Operations {
		if op.WeatherSensitive {
			return true
		}
	}
	return false
}

// EndTime is the expected completion time of the visit.
func (s RouteSequence) EndTime() time.Time {
	return s.ArrivalTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// WorkerRoute is a worker's ordered visit sequence for one day of the week.
// Reordering always produces a new value with the same sequence set; a
// route is never mutated in place.
type WorkerRoute struct {
	ID        string
	WorkerID  string
	Name      string
	DayOfWeek time.Weekday
	Sequences []RouteSequence
}
