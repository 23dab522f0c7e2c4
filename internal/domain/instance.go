package domain

import "time"

// ScheduleInstance is one concrete, time-stamped duty derived from a
// routine for a single date. Instances are recomputed on every query and
// never persisted; the ID is deterministic for a given routine and slot.
type ScheduleInstance struct {
	ID               string
	RoutineID        string
	BuildingID       string
	Start            time.Time
	End              time.Time
	Category         string
	WeatherDependent bool
	RequiresPhoto    bool
}
