package domain

// RoutineDefinition is a recurring duty assigned to a worker at a building.
// Definitions are created by the ingestion/import pipeline and are read-only
// here; the rule text is parsed into Rule once at the load boundary.
type RoutineDefinition struct {
	ID               string
	WorkerID         string
	BuildingID       string
	Name             string
	Category         string
	Rule             RecurrenceRule
	DurationMinutes  int
	WeatherDependent bool
	RequiresPhoto    bool
	Priority         int
}
